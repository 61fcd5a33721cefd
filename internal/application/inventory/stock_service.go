package inventory

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService exposes the product catalog and restocking
type StockService struct {
	txScope        TransactionScope
	productRepo    inventory.ProductRepository
	stockLedger    *inventory.StockLedger
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(txScope TransactionScope, productRepo inventory.ProductRepository, logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		txScope:     txScope,
		productRepo: productRepo,
		stockLedger: inventory.NewStockLedger(),
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateProduct adds a product with its opening stock
func (s *StockService) CreateProduct(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	p, err := inventory.NewProduct(ownerID, req.Name, req.Category, req.UnitPrice, req.UnitCost, req.StockQuantity, req.ReorderThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, shared.NewPersistenceError("save product", err)
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// GetProduct retrieves a product by ID
func (s *StockService) GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByIDForOwner(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// ListProducts lists products with pagination
func (s *StockService) ListProducts(ctx context.Context, ownerID uuid.UUID, f ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.BelowReorder {
		filter.Filters["below_reorder"] = true
	}

	products, err := s.productRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, shared.NewPersistenceError("list products", err)
	}
	total, err := s.productRepo.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, shared.NewPersistenceError("count products", err)
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Restock returns quantity to a product through the stock ledger
func (s *StockService) Restock(ctx context.Context, ownerID, productID uuid.UUID, quantity decimal.Decimal) (*ProductResponse, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("quantity", "Quantity must be positive")
	}

	var product *inventory.Product
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		product, err = s.stockLedger.Increment(ctx, repos.ProductRepo(), ownerID, productID, quantity)
		if err != nil {
			return shared.NewPersistenceError("restock product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product restocked",
		zap.String("product_id", productID.String()),
		zap.String("quantity", quantity.String()),
		zap.String("stock_quantity", product.StockQuantity.String()),
	)
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, inventory.NewStockRestockedEvent(product, quantity)); err != nil {
			s.logger.Warn("failed to publish restock event", zap.Error(err))
		}
	}

	resp := ToProductResponse(product)
	return &resp, nil
}
