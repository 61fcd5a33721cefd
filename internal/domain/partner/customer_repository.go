package partner

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForOwner finds a customer by ID within an owner scope
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)

	// FindAllForOwner lists customers for an owner
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}
