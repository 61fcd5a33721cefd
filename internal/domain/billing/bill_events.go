package billing

import (
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeBill = "Bill"

// Event type constants
const (
	EventTypeBillCreated     = "billing.bill.created"
	EventTypeBillDeleted     = "billing.bill.deleted"
	EventTypePaymentRecorded = "billing.payment.recorded"
)

// BillCreatedEvent is raised when a bill has been committed
type BillCreatedEvent struct {
	shared.BaseDomainEvent
	BillID        uuid.UUID       `json:"bill_id"`
	BillNumber    string          `json:"bill_number"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	ItemCount     int             `json:"item_count"`
}

// NewBillCreatedEvent creates a new BillCreatedEvent
func NewBillCreatedEvent(b *Bill) *BillCreatedEvent {
	return &BillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillCreated, AggregateTypeBill, b.ID, b.OwnerID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		CustomerID:      b.CustomerID,
		TotalAmount:     b.TotalAmount,
		PaymentMethod:   b.PaymentMethod,
		PaymentStatus:   b.PaymentStatus,
		ItemCount:       len(b.Items),
	}
}

// EventType returns the event type name
func (e *BillCreatedEvent) EventType() string {
	return EventTypeBillCreated
}

// BillDeletedEvent is raised when a bill has been reversed and removed
type BillDeletedEvent struct {
	shared.BaseDomainEvent
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewBillDeletedEvent creates a new BillDeletedEvent
func NewBillDeletedEvent(b *Bill) *BillDeletedEvent {
	return &BillDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillDeleted, AggregateTypeBill, b.ID, b.OwnerID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		TotalAmount:     b.TotalAmount,
		ItemCount:       len(b.Items),
	}
}

// EventType returns the event type name
func (e *BillDeletedEvent) EventType() string {
	return EventTypeBillDeleted
}

// PaymentRecordedEvent is raised when a payment is applied to a credit bill
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID       `json:"bill_id"`
	BillNumber string          `json:"bill_number"`
	Amount     decimal.Decimal `json:"amount"`
	Overpaid   decimal.Decimal `json:"overpaid"`
	NewPaid    decimal.Decimal `json:"new_paid"`
	NewBalance decimal.Decimal `json:"new_balance"`
	NewStatus  PaymentStatus   `json:"new_status"`
	Method     string          `json:"method"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(b *Bill, outcome *PaymentOutcome, method string) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypeBill, b.ID, b.OwnerID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		Amount:          outcome.Applied,
		Overpaid:        outcome.Overpaid,
		NewPaid:         outcome.NewPaid,
		NewBalance:      outcome.NewBalance,
		NewStatus:       outcome.NewStatus,
		Method:          tenderOrDefault(method),
	}
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return EventTypePaymentRecorded
}
