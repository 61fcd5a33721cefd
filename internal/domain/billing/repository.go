package billing

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutstandingFilter narrows the outstanding-bills query
type OutstandingFilter struct {
	shared.Filter
	CustomerID   *uuid.UUID
	CustomerName string
	Status       PaymentStatus
	Range        shared.DateRange
}

// ReceivableSummary aggregates what customers owe an owner
type ReceivableSummary struct {
	TotalOutstanding decimal.Decimal
	TotalBilled      decimal.Decimal
	TotalReceived    decimal.Decimal
	BillCount        int64
	CustomerCount    int64
}

// CollectionSummary aggregates payments received in a period
type CollectionSummary struct {
	TransactionCount int64
	TotalAmount      decimal.Decimal
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	// FindByIDForOwner loads a bill with its line items
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error)

	// FindByIDForUpdate loads a bill with its line items and locks the header row.
	// Must run inside a transaction.
	FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error)

	// Create inserts the bill header and its line items
	Create(ctx context.Context, bill *Bill) error

	// SaveWithLock writes the payment fields only if the stored version is the one loaded
	SaveWithLock(ctx context.Context, bill *Bill) error

	// Delete removes the bill header and its line items
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// FindOutstanding lists bills with a positive credit balance
	FindOutstanding(ctx context.Context, ownerID uuid.UUID, filter OutstandingFilter) ([]Bill, int64, error)

	// FindByCustomer lists a customer's bills, newest first
	FindByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]Bill, error)

	// SummarizeReceivable totals outstanding credit for an owner
	SummarizeReceivable(ctx context.Context, ownerID uuid.UUID) (*ReceivableSummary, error)
}

// PaymentRecordRepository defines the interface for payment record persistence
type PaymentRecordRepository interface {
	Create(ctx context.Context, records ...*PaymentRecord) error
	FindByBill(ctx context.Context, ownerID, billID uuid.UUID) ([]PaymentRecord, error)
	DeleteByBill(ctx context.Context, ownerID, billID uuid.UUID) error
}

// CreditTransactionRepository defines the interface for the credit audit trail
type CreditTransactionRepository interface {
	Create(ctx context.Context, txns ...*CreditTransaction) error

	// FindByBill returns a bill's entries, newest first
	FindByBill(ctx context.Context, ownerID, billID uuid.UUID) ([]CreditTransaction, error)

	// FindByCustomer returns a customer's entries, newest first
	FindByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]CreditTransaction, error)

	// SumPayments totals payment-type entries created within the range
	SumPayments(ctx context.Context, ownerID uuid.UUID, r shared.DateRange) (*CollectionSummary, error)

	// DeleteByBill removes a bill's entries as part of deleting the bill
	DeleteByBill(ctx context.Context, ownerID, billID uuid.UUID) error
}

// SalesEntryRepository defines the interface for sales-ledger rows
type SalesEntryRepository interface {
	CreateBatch(ctx context.Context, entries []SalesEntry) error
	DeleteByBill(ctx context.Context, ownerID, billID uuid.UUID) error
}
