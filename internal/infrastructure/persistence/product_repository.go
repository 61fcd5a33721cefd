package persistence

import (
	"context"
	"errors"

	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForOwner finds a product by ID within an owner scope
func (r *GormProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*inventory.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product", id.String())
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForUpdate loads and row-locks the given products in ascending id order.
// Ids that do not exist for the owner are simply absent from the result.
func (r *GormProductRepository) FindByIDsForUpdate(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]inventory.Product, error) {
	if len(ids) == 0 {
		return []inventory.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	products := make([]inventory.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FindAllForOwner lists products for an owner
func (r *GormProductRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]inventory.Product, error) {
	var rows []models.ProductModel
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilter(query, filter)
	query = applyPagination(query, filter, ProductSortFields, "name")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]inventory.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// CountForOwner counts products matching the filter
func (r *GormProductRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("owner_id = ?", ownerID)
	if err := r.applyFilter(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	return r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error
}

// SaveWithLock writes the product only if the stored version is one behind
// the in-memory version
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *inventory.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND owner_id = ? AND version = ?", product.ID, product.OwnerID, product.Version-1).
		Updates(map[string]any{
			"name":              product.Name,
			"category":          product.Category,
			"unit_price":        product.UnitPrice,
			"unit_cost":         product.UnitCost,
			"stock_quantity":    product.StockQuantity,
			"reorder_threshold": product.ReorderThreshold,
			"version":           product.Version,
			"updated_at":        product.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return staleWrite("Product")
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", like)
	}
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "below_reorder":
			if value == true {
				query = query.Where("stock_quantity <= reorder_threshold")
			}
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
