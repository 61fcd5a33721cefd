package inventory

import (
	"strings"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the aggregate root of the stock ledger. Its StockQuantity is only
// ever changed through Decrement and Increment.
type Product struct {
	shared.OwnerAggregateRoot
	Name             string
	Category         string
	UnitPrice        decimal.Decimal
	UnitCost         decimal.Decimal
	StockQuantity    decimal.Decimal
	ReorderThreshold decimal.Decimal
}

// NewProduct creates a new product with an opening stock level
func NewProduct(ownerID uuid.UUID, name, category string, unitPrice, unitCost, stock, threshold decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("unit_price", "Unit price cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewValidationError("unit_cost", "Unit cost cannot be negative")
	}
	if stock.IsNegative() {
		return nil, shared.NewValidationError("stock_quantity", "Stock quantity cannot be negative")
	}
	if threshold.IsNegative() {
		return nil, shared.NewValidationError("reorder_threshold", "Reorder threshold cannot be negative")
	}

	return &Product{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               name,
		Category:           strings.TrimSpace(category),
		UnitPrice:          unitPrice,
		UnitCost:           unitCost,
		StockQuantity:      stock,
		ReorderThreshold:   threshold,
	}, nil
}

// CanFulfill reports whether the requested quantity is on hand
func (p *Product) CanFulfill(quantity decimal.Decimal) bool {
	return quantity.LessThanOrEqual(p.StockQuantity)
}

// Decrement removes quantity from stock and returns the new on-hand quantity.
// A threshold event is queued when the result is at or below the reorder threshold.
func (p *Product) Decrement(quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return p.StockQuantity, shared.NewValidationError("quantity", "Quantity must be positive")
	}
	if !p.CanFulfill(quantity) {
		return p.StockQuantity, NewInsufficientStockError([]Shortage{NewShortage(p, quantity)})
	}

	p.StockQuantity = p.StockQuantity.Sub(quantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.IsBelowThreshold() {
		p.AddDomainEvent(NewStockBelowThresholdEvent(p))
	}
	return p.StockQuantity, nil
}

// Increment returns quantity to stock, for restocking or bill reversal
func (p *Product) Increment(quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return p.StockQuantity, shared.NewValidationError("quantity", "Quantity must be positive")
	}

	p.StockQuantity = p.StockQuantity.Add(quantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return p.StockQuantity, nil
}

// IsBelowThreshold reports whether stock is at or below the reorder threshold
func (p *Product) IsBelowThreshold() bool {
	return p.StockQuantity.LessThanOrEqual(p.ReorderThreshold)
}

// IsOutOfStock reports whether nothing is left on hand
func (p *Product) IsOutOfStock() bool {
	return !p.StockQuantity.IsPositive()
}

// UnitProfit is the margin earned on one unit at list price
func (p *Product) UnitProfit() decimal.Decimal {
	return p.UnitPrice.Sub(p.UnitCost)
}
