package inventory

import (
	"context"
	"fmt"

	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler forwards low and out-of-stock events to a
// notification sink. Notification failures are logged and swallowed.
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for sending stock alerts
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	OwnerID          string `json:"owner_id"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	CurrentQuantity  string `json:"current_quantity"`
	ReorderThreshold string `json:"reorder_threshold"`
	AlertType        string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewStockBelowThresholdHandler creates a new handler for stock below threshold events
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowThreshold, event.EventType())
	}

	alert := StockAlert{
		OwnerID:          event.OwnerID().String(),
		ProductID:        thresholdEvent.ProductID.String(),
		ProductName:      thresholdEvent.ProductName,
		CurrentQuantity:  thresholdEvent.CurrentQuantity.String(),
		ReorderThreshold: thresholdEvent.ReorderThreshold.String(),
		AlertType:        thresholdEvent.AlertType,
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("owner_id", alert.OwnerID),
		zap.String("product_id", alert.ProductID),
		zap.String("current_quantity", alert.CurrentQuantity),
		zap.String("reorder_threshold", alert.ReorderThreshold),
		zap.String("alert_type", alert.AlertType),
	)

	if h.notifier != nil {
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			h.logger.Error("failed to send stock alert notification",
				zap.String("product_id", alert.ProductID),
				zap.Error(err),
			)
		} else {
			h.logger.Info("stock alert notification sent",
				zap.String("product_id", alert.ProductID),
				zap.String("alert_type", alert.AlertType),
			)
		}
	}

	return nil
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)

// LoggingStockAlertNotifier is a simple notifier that logs alerts
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("product_id", alert.ProductID),
		zap.String("product_name", alert.ProductName),
		zap.String("current_qty", alert.CurrentQuantity),
		zap.String("reorder_threshold", alert.ReorderThreshold),
	)
	return nil
}

var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
