package partner

import (
	"context"
	"testing"

	"github.com/bizpulse/backend/internal/domain/partner"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func TestCustomerService_Create(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)
	ownerID := uuid.New()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *partner.Customer) bool {
		return c.OwnerID == ownerID && c.Name == "Ravi Traders" && c.CreditLimit.Equal(decimal.NewFromInt(5000))
	})).Return(nil)

	resp, err := svc.Create(context.Background(), ownerID, CreateCustomerRequest{
		Name:        "Ravi Traders",
		Phone:       "9876543210",
		Email:       "ravi@example.com",
		Address:     "12 Market Road",
		CreditLimit: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, "12 Market Road", resp.Address)
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_InvalidEmail(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateCustomerRequest{Name: "A", Email: "not-an-email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)
	ownerID, id := uuid.New(), uuid.New()

	repo.On("FindByIDForOwner", mock.Anything, ownerID, id).Return(nil, shared.NewNotFoundError("customer", id.String()))

	_, err := svc.GetByID(context.Background(), ownerID, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerService_List(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)
	ownerID := uuid.New()
	c, err := partner.NewCustomer(ownerID, "Meena Stores", "", "")
	require.NoError(t, err)

	repo.On("FindAllForOwner", mock.Anything, ownerID, mock.Anything).Return([]partner.Customer{*c}, nil)

	result, err := svc.List(context.Background(), ownerID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Meena Stores", result[0].Name)
}
