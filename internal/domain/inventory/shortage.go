package inventory

import (
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shortage describes one product that cannot cover a requested quantity
type Shortage struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
	Shortage    decimal.Decimal `json:"shortage"`
}

// NewShortage builds a shortage line for a product and requested quantity
func NewShortage(p *Product, requested decimal.Decimal) Shortage {
	return Shortage{
		ProductID:   p.ID,
		ProductName: p.Name,
		Requested:   requested,
		Available:   p.StockQuantity,
		Shortage:    requested.Sub(p.StockQuantity),
	}
}

// NewInsufficientStockError wraps an itemized shortage report
func NewInsufficientStockError(shortages []Shortage) *shared.DomainError {
	return shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock for some items").
		WithDetails(shortages)
}

// CheckAvailability compares aggregated requested quantities against the given
// products. Products are keyed by id; missing products are not reported here.
func CheckAvailability(products map[uuid.UUID]*Product, requested map[uuid.UUID]decimal.Decimal, order []uuid.UUID) []Shortage {
	var shortages []Shortage
	for _, id := range order {
		p, ok := products[id]
		if !ok {
			continue
		}
		qty := requested[id]
		if !p.CanFulfill(qty) {
			shortages = append(shortages, NewShortage(p, qty))
		}
	}
	return shortages
}
