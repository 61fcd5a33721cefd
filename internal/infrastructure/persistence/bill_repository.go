package persistence

import (
	"context"
	"errors"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

// FindByIDForOwner loads a bill with its line items
func (r *GormBillRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("bill", id.String())
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads a bill with its items and locks the header row
func (r *GormBillRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("bill", id.String())
		}
		return nil, translateError(err)
	}
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", model.ID).
		Order("line_no ASC").
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts the bill header and its line items
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// SaveWithLock writes the payment fields of the bill, guarded by its version
func (r *GormBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	result := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("id = ? AND owner_id = ? AND version = ?", bill.ID, bill.OwnerID, bill.Version-1).
		Updates(map[string]any{
			"payment_status":     string(bill.PaymentStatus),
			"credit_paid_amount": bill.CreditPaidAmount,
			"credit_balance":     bill.CreditBalance,
			"version":            bill.Version,
			"updated_at":         bill.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return staleWrite("Bill")
	}
	return nil
}

// Delete removes the bill header and its line items
func (r *GormBillRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND bill_id = ?", ownerID, id).
		Delete(&models.BillItemModel{}).Error; err != nil {
		return translateError(err)
	}
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.BillModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("bill", id.String())
	}
	return nil
}

// FindOutstanding lists bills with a positive credit balance
func (r *GormBillRepository) FindOutstanding(ctx context.Context, ownerID uuid.UUID, filter billing.OutstandingFilter) ([]billing.Bill, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("owner_id = ? AND credit_balance > 0", ownerID)

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.CustomerName != "" {
		query = query.Where("LOWER(customer_name) LIKE LOWER(?)", "%"+filter.CustomerName+"%")
	}
	if filter.Status != "" {
		query = query.Where("payment_status = ?", string(filter.Status))
	}
	query = applyDateRange(query, "created_at", filter.Range)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BillModel
	if err := applyPagination(query.Session(&gorm.Session{}), filter.Filter, BillSortFields, "created_at").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainBills(rows), total, nil
}

// FindByCustomer lists a customer's bills, newest first
func (r *GormBillRepository) FindByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]billing.Bill, error) {
	var rows []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBills(rows), nil
}

// SummarizeReceivable totals outstanding credit for an owner
func (r *GormBillRepository) SummarizeReceivable(ctx context.Context, ownerID uuid.UUID) (*billing.ReceivableSummary, error) {
	var row struct {
		TotalOutstanding decimal.Decimal
		TotalBilled      decimal.Decimal
		TotalReceived    decimal.Decimal
		BillCount        int64
		CustomerCount    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Select(`COALESCE(SUM(credit_balance), 0) AS total_outstanding,
			COALESCE(SUM(total_amount), 0) AS total_billed,
			COALESCE(SUM(credit_paid_amount), 0) AS total_received,
			COUNT(*) AS bill_count,
			COUNT(DISTINCT customer_id) AS customer_count`).
		Where("owner_id = ? AND credit_balance > 0", ownerID).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &billing.ReceivableSummary{
		TotalOutstanding: row.TotalOutstanding.Round(billing.MoneyPlaces),
		TotalBilled:      row.TotalBilled.Round(billing.MoneyPlaces),
		TotalReceived:    row.TotalReceived.Round(billing.MoneyPlaces),
		BillCount:        row.BillCount,
		CustomerCount:    row.CustomerCount,
	}, nil
}

func toDomainBills(rows []models.BillModel) []billing.Bill {
	bills := make([]billing.Bill, len(rows))
	for i := range rows {
		bills[i] = *rows[i].ToDomain()
	}
	return bills
}

// applyDateRange bounds column by the range; From is inclusive, To exclusive
func applyDateRange(query *gorm.DB, column string, r shared.DateRange) *gorm.DB {
	if !r.From.IsZero() {
		query = query.Where(column+" >= ?", r.From)
	}
	if !r.To.IsZero() {
		query = query.Where(column+" < ?", r.To)
	}
	return query
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
