package event

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LedgerEventTypes lists every event the ledger publishes
var LedgerEventTypes = []string{
	billing.EventTypeBillCreated,
	billing.EventTypeBillDeleted,
	billing.EventTypePaymentRecorded,
	inventory.EventTypeStockBelowThreshold,
	inventory.EventTypeStockRestocked,
}

// AuditLogHandler writes one structured log line per ledger event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes returns the ledger event types
func (h *AuditLogHandler) EventTypes() []string {
	return LedgerEventTypes
}

// Handle logs the event
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("owner_id", event.OwnerID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}
	switch e := event.(type) {
	case *billing.BillCreatedEvent:
		fields = append(fields,
			zap.String("bill_number", e.BillNumber),
			zap.String("total_amount", e.TotalAmount.String()),
			zap.String("payment_status", string(e.PaymentStatus)))
	case *billing.PaymentRecordedEvent:
		fields = append(fields,
			zap.String("bill_number", e.BillNumber),
			zap.String("amount", e.Amount.String()))
	case *inventory.StockBelowThresholdEvent:
		fields = append(fields,
			zap.String("product_name", e.ProductName),
			zap.String("alert_type", e.AlertType))
	}
	h.logger.Info("ledger event", fields...)
	return nil
}

// Subscriptions wires the standard ledger handlers onto a bus.
// Handlers passed in alerts are wrapped for at-most-once delivery when a store is given.
func Subscriptions(bus shared.EventSubscriber, logger *zap.Logger, store shared.IdempotencyStore, alerts ...shared.EventHandler) {
	bus.Subscribe(NewAuditLogHandler(logger))
	for _, h := range alerts {
		if store != nil {
			h = NewIdempotentHandler(h, store, logger)
		}
		bus.Subscribe(h)
	}
}
