package persistence

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRecordRepository implements PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// Create appends payment records. No records is a no-op.
func (r *GormPaymentRecordRepository) Create(ctx context.Context, records ...*billing.PaymentRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]models.PaymentModel, len(records))
	for i, rec := range records {
		rows[i] = models.PaymentModelFromDomain(rec)
	}
	return translateError(r.db.WithContext(ctx).Create(&rows).Error)
}

// FindByBill returns a bill's payments in the order they were processed
func (r *GormPaymentRecordRepository) FindByBill(ctx context.Context, ownerID, billID uuid.UUID) ([]billing.PaymentRecord, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND bill_id = ?", ownerID, billID).
		Order("processed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]billing.PaymentRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

// DeleteByBill removes a bill's payments
func (r *GormPaymentRecordRepository) DeleteByBill(ctx context.Context, ownerID, billID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Where("owner_id = ? AND bill_id = ?", ownerID, billID).
		Delete(&models.PaymentModel{}).Error)
}

var _ billing.PaymentRecordRepository = (*GormPaymentRecordRepository)(nil)
