package inventory

import (
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeStockBelowThreshold = "inventory.stock.below_threshold"
	EventTypeStockRestocked      = "inventory.stock.restocked"
)

// Alert types carried by StockBelowThresholdEvent
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"
)

// StockBelowThresholdEvent is raised when a decrement leaves stock at or below
// the product's reorder threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	AlertType        string          `json:"alert_type"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(p *Product) *StockBelowThresholdEvent {
	alertType := AlertTypeLowStock
	if p.IsOutOfStock() {
		alertType = AlertTypeOutOfStock
	}
	return &StockBelowThresholdEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeProduct, p.ID, p.OwnerID),
		ProductID:        p.ID,
		ProductName:      p.Name,
		CurrentQuantity:  p.StockQuantity,
		ReorderThreshold: p.ReorderThreshold,
		AlertType:        alertType,
	}
}

// EventType returns the event type name
func (e *StockBelowThresholdEvent) EventType() string {
	return EventTypeStockBelowThreshold
}

// StockRestockedEvent is raised when stock is added back through a restock
type StockRestockedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewStockRestockedEvent creates a new StockRestockedEvent
func NewStockRestockedEvent(p *Product, quantity decimal.Decimal) *StockRestockedEvent {
	return &StockRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestocked, AggregateTypeProduct, p.ID, p.OwnerID),
		ProductID:       p.ID,
		Quantity:        quantity,
		NewQuantity:     p.StockQuantity,
	}
}

// EventType returns the event type name
func (e *StockRestockedEvent) EventType() string {
	return EventTypeStockRestocked
}
