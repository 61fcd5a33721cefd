package telemetry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Metric attribute keys
var (
	AttrOwnerID       = attribute.Key("owner_id")
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrOperation     = attribute.Key("operation")
)

// Money buckets for bill and payment amounts, in currency units
var amountBuckets = []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 50000}

// BusinessMetrics records ledger measurements: bills, payments, shortages
// and optimistic-lock conflicts.
type BusinessMetrics struct {
	billsCreated   *Counter
	billAmount     *Histogram
	billsDeleted   *Counter
	payments       *Counter
	paymentAmount  *Histogram
	stockShortages *Counter
	conflicts      *Counter
	logger         *zap.Logger
}

// NewBusinessMetrics registers the ledger instruments on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, errors.New("NewBusinessMetrics: meter cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var err error
	if bm.billsCreated, err = NewCounter(meter, "bizpulse.bills.created", "Bills committed", "{bill}"); err != nil {
		return nil, err
	}
	if bm.billAmount, err = NewHistogram(meter, "bizpulse.bills.amount", "Bill total amount", "{currency}", amountBuckets...); err != nil {
		return nil, err
	}
	if bm.billsDeleted, err = NewCounter(meter, "bizpulse.bills.deleted", "Bills removed by compensating delete", "{bill}"); err != nil {
		return nil, err
	}
	if bm.payments, err = NewCounter(meter, "bizpulse.payments.recorded", "Credit payments applied", "{payment}"); err != nil {
		return nil, err
	}
	if bm.paymentAmount, err = NewHistogram(meter, "bizpulse.payments.amount", "Credit payment amount applied", "{currency}", amountBuckets...); err != nil {
		return nil, err
	}
	if bm.stockShortages, err = NewCounter(meter, "bizpulse.stock.shortages", "Bills rejected for insufficient stock", "{bill}"); err != nil {
		return nil, err
	}
	if bm.conflicts, err = NewCounter(meter, "bizpulse.ledger.conflicts", "Operations aborted by lock or version conflicts", "{conflict}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordBillCreated counts a committed bill and its total
func (bm *BusinessMetrics) RecordBillCreated(ctx context.Context, ownerID uuid.UUID, method string, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{AttrOwnerID.String(ownerID.String()), AttrPaymentMethod.String(method)}
	bm.billsCreated.Inc(ctx, attrs...)
	bm.billAmount.Record(ctx, amount.InexactFloat64(), attrs...)
}

// RecordBillDeleted counts a compensating delete
func (bm *BusinessMetrics) RecordBillDeleted(ctx context.Context, ownerID uuid.UUID) {
	bm.billsDeleted.Inc(ctx, AttrOwnerID.String(ownerID.String()))
}

// RecordPayment counts an applied credit payment and its amount
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, ownerID uuid.UUID, method string, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{AttrOwnerID.String(ownerID.String()), AttrPaymentMethod.String(method)}
	bm.payments.Inc(ctx, attrs...)
	bm.paymentAmount.Record(ctx, amount.InexactFloat64(), attrs...)
}

// RecordStockShortage counts a bill rejected for insufficient stock
func (bm *BusinessMetrics) RecordStockShortage(ctx context.Context, ownerID uuid.UUID) {
	bm.stockShortages.Inc(ctx, AttrOwnerID.String(ownerID.String()))
}

// RecordConflict counts a lock or version conflict for operation
func (bm *BusinessMetrics) RecordConflict(ctx context.Context, ownerID uuid.UUID, operation string) {
	bm.logger.Debug("ledger conflict recorded",
		zap.String("owner_id", ownerID.String()),
		zap.String("operation", operation),
	)
	bm.conflicts.Inc(ctx, AttrOwnerID.String(ownerID.String()), AttrOperation.String(operation))
}
