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

type MockStockAlertNotifier struct {
	mock.Mock
}

func (m *MockStockAlertNotifier) SendAlert(ctx context.Context, alert StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func TestStockBelowThresholdHandler_EventTypes(t *testing.T) {
	h := NewStockBelowThresholdHandler(zap.NewNop())
	assert.Equal(t, []string{inventory.EventTypeStockBelowThreshold}, h.EventTypes())
}

func TestStockBelowThresholdHandler_Handle(t *testing.T) {
	ownerID := uuid.New()
	p := newTestProduct(t, ownerID, "6")
	_, err := p.Decrement(decimal.NewFromInt(6))
	require.NoError(t, err)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)

	notifier := new(MockStockAlertNotifier)
	notifier.On("SendAlert", mock.Anything, mock.MatchedBy(func(a StockAlert) bool {
		return a.OwnerID == ownerID.String() &&
			a.ProductID == p.ID.String() &&
			a.AlertType == inventory.AlertTypeOutOfStock &&
			a.CurrentQuantity == "0"
	})).Return(nil)

	h := NewStockBelowThresholdHandler(zap.NewNop()).WithNotifier(notifier)
	require.NoError(t, h.Handle(context.Background(), events[0]))
	notifier.AssertExpectations(t)
}

func TestStockBelowThresholdHandler_NotifierFailureIsSwallowed(t *testing.T) {
	p := newTestProduct(t, uuid.New(), "7")
	_, err := p.Decrement(decimal.NewFromInt(3))
	require.NoError(t, err)

	notifier := new(MockStockAlertNotifier)
	notifier.On("SendAlert", mock.Anything, mock.Anything).Return(errors.New("redis unavailable"))

	h := NewStockBelowThresholdHandler(zap.NewNop()).WithNotifier(notifier)
	assert.NoError(t, h.Handle(context.Background(), p.GetDomainEvents()[0]))
}

func TestStockBelowThresholdHandler_WrongEventType(t *testing.T) {
	p := newTestProduct(t, uuid.New(), "7")
	event := inventory.NewStockRestockedEvent(p, decimal.NewFromInt(1))

	h := NewStockBelowThresholdHandler(zap.NewNop())
	err := h.Handle(context.Background(), event)
	assert.Error(t, err)
}

func TestLoggingStockAlertNotifier(t *testing.T) {
	n := NewLoggingStockAlertNotifier(zap.NewNop())
	assert.NoError(t, n.SendAlert(context.Background(), StockAlert{ProductID: "p"}))
	var _ shared.EventHandler = NewStockBelowThresholdHandler(zap.NewNop())
}
