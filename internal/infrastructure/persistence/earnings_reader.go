package persistence

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/earnings"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEarningsReader loads committed bills and their lines for the earnings calculator
type GormEarningsReader struct {
	db *gorm.DB
}

// NewGormEarningsReader creates a new GormEarningsReader
func NewGormEarningsReader(db *gorm.DB) *GormEarningsReader {
	return &GormEarningsReader{db: db}
}

// LoadBills returns the owner's bills created within the range, with their lines
func (r *GormEarningsReader) LoadBills(ctx context.Context, ownerID uuid.UUID, dr shared.DateRange) ([]earnings.BillSnapshot, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("owner_id = ?", ownerID)
	query = applyDateRange(query, "created_at", dr)

	var rows []models.BillModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	snapshots := make([]earnings.BillSnapshot, len(rows))
	for i := range rows {
		snapshots[i] = toBillSnapshot(&rows[i])
	}
	return snapshots, nil
}

func toBillSnapshot(m *models.BillModel) earnings.BillSnapshot {
	snap := earnings.BillSnapshot{
		BillID:        m.ID,
		Status:        m.PaymentStatus,
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.CreditPaidAmount,
		CreditBalance: m.CreditBalance,
		CreatedAt:     m.CreatedAt,
		Lines:         make([]earnings.LineSnapshot, len(m.Items)),
	}
	for i, item := range m.Items {
		snap.Lines[i] = earnings.LineSnapshot{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
			UnitCost:    item.UnitCost,
		}
	}
	return snap
}

var _ earnings.Reader = (*GormEarningsReader)(nil)
