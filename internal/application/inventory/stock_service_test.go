package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of inventory.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*inventory.Product, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForUpdate(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]inventory.Product, error) {
	args := m.Called(ctx, ownerID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]inventory.Product, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *inventory.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestProduct(t *testing.T, ownerID uuid.UUID, stock string) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(ownerID, "Green Tea", "Beverages",
		decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.RequireFromString(stock), decimal.NewFromInt(5))
	require.NoError(t, err)
	return p
}

func TestStockService_CreateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())
	ownerID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Product")).Return(nil)

	resp, err := svc.CreateProduct(context.Background(), ownerID, CreateProductRequest{
		Name:             "Green Tea",
		UnitPrice:        decimal.NewFromInt(50),
		UnitCost:         decimal.NewFromInt(30),
		StockQuantity:    decimal.NewFromInt(3),
		ReorderThreshold: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", resp.Name)
	assert.True(t, resp.IsBelowThreshold)
	repo.AssertExpectations(t)
}

func TestStockService_CreateProduct_Validation(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, nil)

	_, err := svc.CreateProduct(context.Background(), uuid.New(), CreateProductRequest{Name: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStockService_Restock(t *testing.T) {
	repo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())
	svc.SetEventPublisher(publisher)

	ownerID := uuid.New()
	p := newTestProduct(t, ownerID, "2")

	repo.On("FindByIDsForUpdate", mock.Anything, ownerID, []uuid.UUID{p.ID}).Return([]inventory.Product{*p}, nil)
	repo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*inventory.Product")).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == inventory.EventTypeStockRestocked
	})).Return(nil)

	resp, err := svc.Restock(context.Background(), ownerID, p.ID, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, resp.StockQuantity.Equal(decimal.NewFromInt(12)))
	assert.False(t, resp.IsBelowThreshold)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestStockService_Restock_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())
	ownerID := uuid.New()
	productID := uuid.New()

	repo.On("FindByIDsForUpdate", mock.Anything, ownerID, []uuid.UUID{productID}).Return([]inventory.Product{}, nil)

	_, err := svc.Restock(context.Background(), ownerID, productID, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStockService_Restock_RejectsNonPositive(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())

	_, err := svc.Restock(context.Background(), uuid.New(), uuid.New(), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestStockService_Restock_ConflictPropagates(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())
	ownerID := uuid.New()
	p := newTestProduct(t, ownerID, "2")

	repo.On("FindByIDsForUpdate", mock.Anything, ownerID, []uuid.UUID{p.ID}).Return([]inventory.Product{*p}, nil)
	repo.On("SaveWithLock", mock.Anything, mock.Anything).Return(shared.NewConcurrencyConflict("product was modified"))

	_, err := svc.Restock(context.Background(), ownerID, p.ID, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestStockService_ListProducts(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())
	ownerID := uuid.New()
	p := newTestProduct(t, ownerID, "20")

	repo.On("FindAllForOwner", mock.Anything, ownerID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 1 && f.Filters["category"] == "Beverages"
	})).Return([]inventory.Product{*p}, nil)
	repo.On("CountForOwner", mock.Anything, ownerID, mock.Anything).Return(int64(3), nil)

	result, err := svc.ListProducts(context.Background(), ownerID, ProductListFilter{Category: "Beverages", Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestStockService_ListProducts_StorageError(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewStockService(NewNoOpTransactionScope(repo), repo, zap.NewNop())

	repo.On("FindAllForOwner", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ListProducts(context.Background(), uuid.New(), ProductListFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrPersistence)
}
