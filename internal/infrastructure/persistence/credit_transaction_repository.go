package persistence

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCreditTransactionRepository implements CreditTransactionRepository using GORM.
// Rows are insert-only; the only removal path is deleting the whole bill.
type GormCreditTransactionRepository struct {
	db *gorm.DB
}

// NewGormCreditTransactionRepository creates a new GormCreditTransactionRepository
func NewGormCreditTransactionRepository(db *gorm.DB) *GormCreditTransactionRepository {
	return &GormCreditTransactionRepository{db: db}
}

// Create appends audit entries. No entries is a no-op.
func (r *GormCreditTransactionRepository) Create(ctx context.Context, txns ...*billing.CreditTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	rows := make([]models.CreditTransactionModel, len(txns))
	for i, t := range txns {
		rows[i] = models.CreditTransactionModelFromDomain(t)
	}
	return translateError(r.db.WithContext(ctx).Create(&rows).Error)
}

// FindByBill returns a bill's entries, newest first
func (r *GormCreditTransactionRepository) FindByBill(ctx context.Context, ownerID, billID uuid.UUID) ([]billing.CreditTransaction, error) {
	return r.find(ctx, "owner_id = ? AND bill_id = ?", ownerID, billID)
}

// FindByCustomer returns a customer's entries, newest first
func (r *GormCreditTransactionRepository) FindByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]billing.CreditTransaction, error) {
	return r.find(ctx, "owner_id = ? AND customer_id = ?", ownerID, customerID)
}

func (r *GormCreditTransactionRepository) find(ctx context.Context, cond string, args ...any) ([]billing.CreditTransaction, error) {
	var rows []models.CreditTransactionModel
	if err := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("created_at DESC").
		// a credit bill writes its issued row and upfront payment in one
		// instant; the issued row is the older of the two
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN type = ? THEN 1 ELSE 0 END",
			Vars:               []any{string(billing.CreditTransactionIssued)},
			WithoutParentheses: true,
		}}).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	txns := make([]billing.CreditTransaction, len(rows))
	for i := range rows {
		txns[i] = rows[i].ToDomain()
	}
	return txns, nil
}

// SumPayments totals payment entries created within the range
func (r *GormCreditTransactionRepository) SumPayments(ctx context.Context, ownerID uuid.UUID, dr shared.DateRange) (*billing.CollectionSummary, error) {
	var row struct {
		TransactionCount int64
		TotalAmount      decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&models.CreditTransactionModel{}).
		Select("COUNT(*) AS transaction_count, COALESCE(SUM(amount), 0) AS total_amount").
		Where("owner_id = ? AND type = ?", ownerID, string(billing.CreditTransactionPayment))
	if err := applyDateRange(query, "created_at", dr).Scan(&row).Error; err != nil {
		return nil, err
	}
	return &billing.CollectionSummary{
		TransactionCount: row.TransactionCount,
		TotalAmount:      row.TotalAmount.Round(billing.MoneyPlaces),
	}, nil
}

// DeleteByBill removes a bill's entries as part of deleting the bill
func (r *GormCreditTransactionRepository) DeleteByBill(ctx context.Context, ownerID, billID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).
		Where("owner_id = ? AND bill_id = ?", ownerID, billID).
		Delete(&models.CreditTransactionModel{}).Error)
}

var _ billing.CreditTransactionRepository = (*GormCreditTransactionRepository)(nil)
