package inventory

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLedger is the single authority for changing on-hand quantities.
// The repository is passed per call so the ledger can run inside whatever
// transaction the caller holds.
type StockLedger struct{}

// NewStockLedger creates a new StockLedger
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// Decrement removes quantity from an already locked product and persists it
func (l *StockLedger) Decrement(ctx context.Context, repo ProductRepository, p *Product, quantity decimal.Decimal) (decimal.Decimal, error) {
	if p == nil {
		return decimal.Zero, shared.NewValidationError("product_id", "Product cannot be nil")
	}
	newQty, err := p.Decrement(quantity)
	if err != nil {
		return newQty, err
	}
	if err := repo.SaveWithLock(ctx, p); err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

// Increment locks a product, returns quantity to stock and persists it
func (l *StockLedger) Increment(ctx context.Context, repo ProductRepository, ownerID, productID uuid.UUID, quantity decimal.Decimal) (*Product, error) {
	products, err := repo.FindByIDsForUpdate(ctx, ownerID, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, shared.NewNotFoundError("product", productID.String())
	}
	p := &products[0]
	if _, err := p.Increment(quantity); err != nil {
		return nil, err
	}
	if err := repo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
