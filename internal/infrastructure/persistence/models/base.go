package models

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// OwnerAggregateModel provides the persistence fields of owner-scoped aggregate roots:
// identity, timestamps, the optimistic-lock version and the owner scope.
type OwnerAggregateModel struct {
	BaseModel
	Version int       `gorm:"not null;default:1"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainOwnerAggregateRoot populates the model from a domain OwnerAggregateRoot
func (m *OwnerAggregateModel) FromDomainOwnerAggregateRoot(o shared.OwnerAggregateRoot) {
	m.ID = o.ID
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
	m.Version = o.Version
	m.OwnerID = o.OwnerID
}

// ToDomainOwnerAggregateRoot rebuilds the domain OwnerAggregateRoot
func (m *OwnerAggregateModel) ToDomainOwnerAggregateRoot() shared.OwnerAggregateRoot {
	return shared.OwnerAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OwnerID: m.OwnerID,
	}
}
