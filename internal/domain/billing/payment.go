package billing

import (
	"strings"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a bill is settled at creation
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"    // paid in full now
	PaymentMethodPartial PaymentMethod = "partial" // part now, rest on credit
	PaymentMethodCredit  PaymentMethod = "credit"  // all deferred
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPartial, PaymentMethodCredit:
		return true
	}
	return false
}

// IsCredit reports whether the method leaves money owed on the bill
func (m PaymentMethod) IsCredit() bool {
	return m == PaymentMethodPartial || m == PaymentMethodCredit
}

// ParsePaymentMethod normalizes and validates a payment method string
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", shared.NewValidationError("payment_method", "Payment method must be one of cash, partial, credit")
	}
	return m, nil
}

// PaymentStatus is the settlement state of a bill
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// ParsePaymentStatus normalizes and validates a payment status string
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewValidationError("status", "Status must be one of UNPAID, PARTIAL, PAID")
	}
	return status, nil
}

// Settlement is the payment state of a bill
type Settlement struct {
	Method  PaymentMethod
	Status  PaymentStatus
	Paid    decimal.Decimal
	Balance decimal.Decimal
}

// Classify derives the initial settlement of a bill. A partial upfront amount
// of zero or less is treated as credit, and one covering the total as cash.
// Bills with a zero total are always settled.
func Classify(method PaymentMethod, total, upfront decimal.Decimal) (Settlement, error) {
	if !method.IsValid() {
		return Settlement{}, shared.NewValidationError("payment_method", "Payment method must be one of cash, partial, credit")
	}
	if total.IsNegative() {
		return Settlement{}, shared.NewValidationError("total_amount", "Bill total cannot be negative")
	}

	if method == PaymentMethodPartial {
		switch {
		case !upfront.IsPositive():
			method = PaymentMethodCredit
		case upfront.GreaterThanOrEqual(total):
			method = PaymentMethodCash
		}
	}
	if total.IsZero() {
		method = PaymentMethodCash
	}

	switch method {
	case PaymentMethodCash:
		return Settlement{Method: method, Status: PaymentStatusPaid, Paid: total, Balance: decimal.Zero}, nil
	case PaymentMethodCredit:
		return Settlement{Method: method, Status: PaymentStatusUnpaid, Paid: decimal.Zero, Balance: total}, nil
	default:
		return Settlement{Method: method, Status: PaymentStatusPartial, Paid: upfront, Balance: total.Sub(upfront)}, nil
	}
}

// statusFor derives the status from paid and remaining amounts
func statusFor(paid, balance decimal.Decimal) PaymentStatus {
	switch {
	case !balance.IsPositive():
		return PaymentStatusPaid
	case paid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

// PaymentOutcome describes the effect of one payment on a bill
type PaymentOutcome struct {
	Requested       decimal.Decimal
	Applied         decimal.Decimal
	Overpaid        decimal.Decimal
	PreviousBalance decimal.Decimal
	NewPaid         decimal.Decimal
	NewBalance      decimal.Decimal
	NewStatus       PaymentStatus
}
