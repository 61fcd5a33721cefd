package inventory

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForOwner finds a product by ID within an owner scope
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Product, error)

	// FindByIDsForUpdate loads the given products in a single query and takes a
	// row lock on each, in ascending id order. Must run inside a transaction.
	FindByIDsForUpdate(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindAllForOwner lists products for an owner
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Product, error)

	// CountForOwner counts products matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product only if its stored version is the one it was loaded with
	SaveWithLock(ctx context.Context, product *Product) error
}
