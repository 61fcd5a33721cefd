package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultWalkInCustomerName is stored on bills sold without a named customer
const DefaultWalkInCustomerName = "Walk-in Customer"

// LineItem is a single product/quantity entry within a bill. Immutable once written.
type LineItem struct {
	ID                uuid.UUID
	BillID            uuid.UUID
	LineNo            int
	ProductID         uuid.UUID
	ProductName       string
	Category          string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	UnitCost          decimal.Decimal
	LineTotal         decimal.Decimal
	AllocatedTax      decimal.Decimal
	AllocatedDiscount decimal.Decimal
}

// Cost is the cost of goods for the line at the cost captured on sale
func (li LineItem) Cost() decimal.Decimal {
	return li.Quantity.Mul(li.UnitCost)
}

// Profit is the line's revenue less its cost
func (li LineItem) Profit() decimal.Decimal {
	return li.LineTotal.Sub(li.Cost())
}

// LineInput describes one requested line of a new bill
type LineInput struct {
	ProductID   uuid.UUID
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
}

// BillInput carries everything needed to build a bill
type BillInput struct {
	OwnerID       uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	Lines         []LineInput
	TaxTotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Method        PaymentMethod
	Upfront       decimal.Decimal
	Notes         string
	NumberPrefix  string
}

// Bill is one completed sale. After creation only the payment fields change,
// and only through ApplyPayment.
type Bill struct {
	shared.OwnerAggregateRoot
	BillNumber       string
	CustomerID       *uuid.UUID
	CustomerName     string
	Subtotal         decimal.Decimal
	TaxTotal         decimal.Decimal
	DiscountTotal    decimal.Decimal
	TotalAmount      decimal.Decimal
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	CreditPaidAmount decimal.Decimal
	CreditBalance    decimal.Decimal
	Notes            string
	Items            []LineItem
}

// NewBill validates the input, computes totals, allocates tax and discount
// across the lines and classifies the initial settlement.
func NewBill(in BillInput) (*Bill, error) {
	if len(in.Lines) == 0 {
		return nil, shared.NewValidationError("line_items", "Bill must have at least one line item")
	}
	if in.TaxTotal.IsNegative() {
		return nil, shared.NewValidationError("tax_total", "Tax total cannot be negative")
	}
	if in.DiscountTotal.IsNegative() {
		return nil, shared.NewValidationError("discount_total", "Discount total cannot be negative")
	}
	if in.Upfront.IsNegative() {
		return nil, shared.NewValidationError("partial_upfront_amount", "Upfront amount cannot be negative")
	}

	bill := &Bill{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(in.OwnerID),
		CustomerID:         in.CustomerID,
		CustomerName:       strings.TrimSpace(in.CustomerName),
		TaxTotal:           in.TaxTotal.Round(MoneyPlaces),
		DiscountTotal:      in.DiscountTotal.Round(MoneyPlaces),
		Notes:              in.Notes,
		Items:              make([]LineItem, 0, len(in.Lines)),
	}
	if bill.CustomerName == "" {
		bill.CustomerName = DefaultWalkInCustomerName
	}

	subtotal := decimal.Zero
	weights := make([]decimal.Decimal, 0, len(in.Lines))
	for i, l := range in.Lines {
		field := fmt.Sprintf("line_items[%d]", i)
		if l.ProductID == uuid.Nil {
			return nil, shared.NewValidationError(field+".product_id", "Product ID is required")
		}
		if !l.Quantity.IsPositive() {
			return nil, shared.NewValidationError(field+".quantity", "Quantity must be positive")
		}
		if l.UnitPrice.IsNegative() {
			return nil, shared.NewValidationError(field+".unit_price", "Unit price cannot be negative")
		}

		lineTotal := l.Quantity.Mul(l.UnitPrice).Round(MoneyPlaces)
		subtotal = subtotal.Add(lineTotal)
		weights = append(weights, lineTotal)
		bill.Items = append(bill.Items, LineItem{
			ID:          uuid.New(),
			BillID:      bill.ID,
			LineNo:      i + 1,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Category:    l.Category,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			UnitCost:    l.UnitCost,
			LineTotal:   lineTotal,
		})
	}

	bill.Subtotal = subtotal
	bill.TotalAmount = subtotal.Add(bill.TaxTotal).Sub(bill.DiscountTotal)
	if bill.TotalAmount.IsNegative() {
		return nil, shared.NewValidationError("discount_total", "Discount cannot exceed subtotal plus tax")
	}

	taxes := Allocate(weights, bill.TaxTotal)
	discounts := Allocate(weights, bill.DiscountTotal)
	for i := range bill.Items {
		bill.Items[i].AllocatedTax = taxes[i]
		bill.Items[i].AllocatedDiscount = discounts[i]
	}

	settlement, err := Classify(in.Method, bill.TotalAmount, in.Upfront.Round(MoneyPlaces))
	if err != nil {
		return nil, err
	}
	bill.PaymentMethod = settlement.Method
	bill.PaymentStatus = settlement.Status
	bill.CreditPaidAmount = settlement.Paid
	bill.CreditBalance = settlement.Balance
	bill.BillNumber = GenerateBillNumber(in.NumberPrefix, bill.CreatedAt, bill.ID)

	if err := bill.CheckInvariants(); err != nil {
		return nil, err
	}

	bill.AddDomainEvent(NewBillCreatedEvent(bill))
	return bill, nil
}

// RequestedQuantities sums quantities per product, keeping first-seen order
func (b *Bill) RequestedQuantities() (map[uuid.UUID]decimal.Decimal, []uuid.UUID) {
	qty := make(map[uuid.UUID]decimal.Decimal, len(b.Items))
	order := make([]uuid.UUID, 0, len(b.Items))
	for _, item := range b.Items {
		if _, seen := qty[item.ProductID]; !seen {
			order = append(order, item.ProductID)
			qty[item.ProductID] = decimal.Zero
		}
		qty[item.ProductID] = qty[item.ProductID].Add(item.Quantity)
	}
	return qty, order
}

// ApplyPayment records a payment against the outstanding balance.
// Amounts above the balance settle the bill and the excess is reported as
// Overpaid rather than applied.
func (b *Bill) ApplyPayment(amount decimal.Decimal, method string) (*PaymentOutcome, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "Payment amount must be greater than zero")
	}
	if b.PaymentStatus == PaymentStatusPaid {
		return nil, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Bill %s is already fully paid", b.BillNumber))
	}

	amount = amount.Round(MoneyPlaces)
	applied := decimal.Min(amount, b.CreditBalance)
	outcome := &PaymentOutcome{
		Requested:       amount,
		Applied:         applied,
		Overpaid:        amount.Sub(applied),
		PreviousBalance: b.CreditBalance,
	}

	newPaid := b.CreditPaidAmount.Add(applied)
	newBalance := b.TotalAmount.Sub(newPaid)
	if !newBalance.IsPositive() {
		newBalance = decimal.Zero
		newPaid = b.TotalAmount
	}

	b.CreditPaidAmount = newPaid
	b.CreditBalance = newBalance
	b.PaymentStatus = statusFor(newPaid, newBalance)
	b.Touch()
	b.IncrementVersion()

	outcome.NewPaid = b.CreditPaidAmount
	outcome.NewBalance = b.CreditBalance
	outcome.NewStatus = b.PaymentStatus

	if err := b.CheckInvariants(); err != nil {
		return nil, err
	}

	b.AddDomainEvent(NewPaymentRecordedEvent(b, outcome, method))
	return outcome, nil
}

// MarkDeleted queues the deletion event; the caller removes the rows
func (b *Bill) MarkDeleted() {
	b.AddDomainEvent(NewBillDeletedEvent(b))
}

// CheckInvariants verifies the ledger arithmetic of the bill
func (b *Bill) CheckInvariants() error {
	if !b.Subtotal.Add(b.TaxTotal).Sub(b.DiscountTotal).Equal(b.TotalAmount) {
		return invariantError("total_amount", "total does not equal subtotal plus tax minus discount")
	}
	if !b.CreditPaidAmount.Add(b.CreditBalance).Equal(b.TotalAmount) {
		return invariantError("credit_balance", "paid amount plus balance does not equal total")
	}
	if b.CreditBalance.IsNegative() || b.CreditPaidAmount.IsNegative() {
		return invariantError("credit_balance", "paid amount and balance must not be negative")
	}

	taxSum, discountSum := decimal.Zero, decimal.Zero
	for _, item := range b.Items {
		taxSum = taxSum.Add(item.AllocatedTax)
		discountSum = discountSum.Add(item.AllocatedDiscount)
	}
	if len(b.Items) > 0 {
		wantTax, wantDiscount := b.TaxTotal, b.DiscountTotal
		if b.Subtotal.IsZero() {
			wantTax, wantDiscount = decimal.Zero, decimal.Zero
		}
		if !taxSum.Equal(wantTax) || !discountSum.Equal(wantDiscount) {
			return invariantError("line_items", "allocated tax or discount does not sum to the bill totals")
		}
	}
	return nil
}

func invariantError(field, message string) *shared.DomainError {
	return shared.NewDomainError(shared.CodePersistence, "Ledger invariant violated: "+message).
		WithDetails(shared.FieldDetail{Field: field})
}

// GenerateBillNumber formats PREFIX-YYYYMMDD-<first 8 hex of id>
func GenerateBillNumber(prefix string, at time.Time, id uuid.UUID) string {
	if prefix == "" {
		prefix = "BILL"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), strings.ReplaceAll(id.String(), "-", "")[:8])
}
