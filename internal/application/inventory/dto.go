package inventory

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to add a product to the catalog
type CreateProductRequest struct {
	Name             string
	Category         string
	UnitPrice        decimal.Decimal
	UnitCost         decimal.Decimal
	StockQuantity    decimal.Decimal
	ReorderThreshold decimal.Decimal
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search       string
	Category     string
	BelowReorder bool
	Page         int
	PageSize     int
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	StockQuantity    decimal.Decimal `json:"stock_quantity"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	IsBelowThreshold bool            `json:"is_below_threshold"`
	Version          int             `json:"version"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *inventory.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		UnitPrice:        p.UnitPrice,
		UnitCost:         p.UnitCost,
		StockQuantity:    p.StockQuantity,
		ReorderThreshold: p.ReorderThreshold,
		IsBelowThreshold: p.IsBelowThreshold(),
		Version:          p.Version,
		UpdatedAt:        p.UpdatedAt,
	}
}
