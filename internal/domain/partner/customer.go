package partner

import (
	"regexp"
	"strings"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer is a buyer that bills may be charged against on credit.
// The ledger only reads customers.
type Customer struct {
	shared.OwnerAggregateRoot
	Name        string
	Phone       string
	Email       string
	Address     string
	CreditLimit decimal.Decimal
}

// NewCustomer creates a new customer
func NewCustomer(ownerID uuid.UUID, name, phone, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("name", "Customer name cannot exceed 200 characters")
	}
	email = strings.TrimSpace(email)
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewValidationError("email", "Invalid email format")
	}

	return &Customer{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               name,
		Phone:              strings.TrimSpace(phone),
		Email:              email,
		CreditLimit:        decimal.Zero,
	}, nil
}

// SetCreditLimit sets the maximum outstanding credit for the customer
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewValidationError("credit_limit", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.Touch()
	c.IncrementVersion()
	return nil
}

// HasCreditLimit reports whether a credit limit is configured
func (c *Customer) HasCreditLimit() bool {
	return c.CreditLimit.IsPositive()
}
