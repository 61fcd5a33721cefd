package partner

import (
	"context"
	"time"

	"github.com/bizpulse/backend/internal/domain/partner"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name        string
	Phone       string
	Email       string
	Address     string
	CreditLimit decimal.Decimal
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(ownerID, req.Name, req.Phone, req.Email)
	if err != nil {
		return nil, err
	}
	customer.Address = req.Address
	if !req.CreditLimit.IsZero() {
		if err := customer.SetCreditLimit(req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, shared.NewPersistenceError("save customer", err)
	}
	return toCustomerResponse(customer), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, ownerID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lists customers for an owner
func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, shared.NewPersistenceError("list customers", err)
	}
	result := make([]CustomerResponse, len(customers))
	for i := range customers {
		result[i] = *toCustomerResponse(&customers[i])
	}
	return result, nil
}

func toCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		CreditLimit: c.CreditLimit,
		CreatedAt:   c.CreatedAt,
	}
}
