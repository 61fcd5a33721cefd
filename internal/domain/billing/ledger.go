package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditTransactionType distinguishes issued credit from payments against it
type CreditTransactionType string

const (
	CreditTransactionIssued  CreditTransactionType = "issued"
	CreditTransactionPayment CreditTransactionType = "payment"
)

// DefaultTenderMethod is used when a payment does not name how it was paid
const DefaultTenderMethod = "cash"

// PaymentRecord is money received against a bill. Append-only.
type PaymentRecord struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	BillID      uuid.UUID
	Method      string
	Amount      decimal.Decimal
	ProcessedAt time.Time
}

// NewPaymentRecord creates a payment record for the bill
func NewPaymentRecord(b *Bill, amount decimal.Decimal, method string) *PaymentRecord {
	return &PaymentRecord{
		ID:          uuid.New(),
		OwnerID:     b.OwnerID,
		BillID:      b.ID,
		Method:      tenderOrDefault(method),
		Amount:      amount,
		ProcessedAt: time.Now(),
	}
}

// CreditTransaction is one entry in a bill's credit audit trail.
// Entries are never updated.
type CreditTransaction struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	BillID          uuid.UUID
	CustomerID      *uuid.UUID
	CustomerName    string
	Type            CreditTransactionType
	Amount          decimal.Decimal
	Method          string
	ReferenceNumber string
	Note            string
	CreatedAt       time.Time
}

// NewCreditTransaction creates an audit entry for the bill
func NewCreditTransaction(b *Bill, txType CreditTransactionType, amount decimal.Decimal, method, note string) *CreditTransaction {
	return &CreditTransaction{
		ID:              uuid.New(),
		OwnerID:         b.OwnerID,
		BillID:          b.ID,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		Type:            txType,
		Amount:          amount,
		Method:          tenderOrDefault(method),
		ReferenceNumber: b.BillNumber,
		Note:            note,
		CreatedAt:       time.Now(),
	}
}

// SalesEntry is the sales-ledger row written for each line item
type SalesEntry struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	BillID      uuid.UUID
	LineItemID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	LineTotal   decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal
	SoldAt      time.Time
}

// NewSalesEntries derives one sales-ledger row per line item
func NewSalesEntries(b *Bill) []SalesEntry {
	entries := make([]SalesEntry, 0, len(b.Items))
	for _, item := range b.Items {
		entries = append(entries, SalesEntry{
			ID:          uuid.New(),
			OwnerID:     b.OwnerID,
			BillID:      b.ID,
			LineItemID:  item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			UnitCost:    item.UnitCost,
			LineTotal:   item.LineTotal,
			Tax:         item.AllocatedTax,
			Discount:    item.AllocatedDiscount,
			SoldAt:      b.CreatedAt,
		})
	}
	return entries
}

// InitialEntries returns the payment and credit rows written together with a
// new bill, according to its settlement.
func InitialEntries(b *Bill) ([]*PaymentRecord, []*CreditTransaction) {
	var payments []*PaymentRecord
	var credits []*CreditTransaction

	switch b.PaymentMethod {
	case PaymentMethodCash:
		payments = append(payments, NewPaymentRecord(b, b.TotalAmount, string(PaymentMethodCash)))
	case PaymentMethodCredit:
		credits = append(credits,
			NewCreditTransaction(b, CreditTransactionIssued, b.TotalAmount, string(PaymentMethodCredit), "Credit issued on bill"))
	case PaymentMethodPartial:
		credits = append(credits,
			NewCreditTransaction(b, CreditTransactionIssued, b.TotalAmount, string(PaymentMethodPartial), "Credit issued on bill"))
		if b.CreditPaidAmount.IsPositive() {
			credits = append(credits,
				NewCreditTransaction(b, CreditTransactionPayment, b.CreditPaidAmount, DefaultTenderMethod, "Upfront payment"))
			payments = append(payments, NewPaymentRecord(b, b.CreditPaidAmount, string(PaymentMethodPartial)))
		}
	}
	return payments, credits
}

func tenderOrDefault(method string) string {
	method = strings.TrimSpace(method)
	if method == "" {
		return DefaultTenderMethod
	}
	return method
}
