package persistence

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesEntryRepository implements SalesEntryRepository using GORM
type GormSalesEntryRepository struct {
	db *gorm.DB
}

// NewGormSalesEntryRepository creates a new GormSalesEntryRepository
func NewGormSalesEntryRepository(db *gorm.DB) *GormSalesEntryRepository {
	return &GormSalesEntryRepository{db: db}
}

// CreateBatch inserts sales-ledger rows
func (r *GormSalesEntryRepository) CreateBatch(ctx context.Context, entries []billing.SalesEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.SalesEntryModel, len(entries))
	for i := range entries {
		rows[i] = models.SalesEntryModelFromDomain(&entries[i])
	}
	return translateError(r.db.WithContext(ctx).CreateInBatches(&rows, 100).Error)
}

// DeleteByBill removes a bill's sales-ledger rows
func (r *GormSalesEntryRepository) DeleteByBill(ctx context.Context, ownerID, billID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Where("owner_id = ? AND bill_id = ?", ownerID, billID).
		Delete(&models.SalesEntryModel{}).Error)
}

var _ billing.SalesEntryRepository = (*GormSalesEntryRepository)(nil)
