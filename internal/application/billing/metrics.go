package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerMetrics receives business measurements from the ledger services
type LedgerMetrics interface {
	RecordBillCreated(ctx context.Context, ownerID uuid.UUID, method string, amount decimal.Decimal)
	RecordBillDeleted(ctx context.Context, ownerID uuid.UUID)
	RecordPayment(ctx context.Context, ownerID uuid.UUID, method string, amount decimal.Decimal)
	RecordStockShortage(ctx context.Context, ownerID uuid.UUID)
	RecordConflict(ctx context.Context, ownerID uuid.UUID, operation string)
}

type noopMetrics struct{}

func (noopMetrics) RecordBillCreated(context.Context, uuid.UUID, string, decimal.Decimal) {}
func (noopMetrics) RecordBillDeleted(context.Context, uuid.UUID)                          {}
func (noopMetrics) RecordPayment(context.Context, uuid.UUID, string, decimal.Decimal)     {}
func (noopMetrics) RecordStockShortage(context.Context, uuid.UUID)                        {}
func (noopMetrics) RecordConflict(context.Context, uuid.UUID, string)                     {}
