package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/partner"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettlementService applies payments to credit bills and answers
// receivable queries
type SettlementService struct {
	txScope        TransactionScope
	billRepo       billing.BillRepository
	creditRepo     billing.CreditTransactionRepository
	customerRepo   partner.CustomerRepository
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	eventPublisher shared.EventPublisher
	metrics        LedgerMetrics
	logger         *zap.Logger
	now            func() time.Time
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	txScope TransactionScope,
	billRepo billing.BillRepository,
	creditRepo billing.CreditTransactionRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *SettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettlementService{
		txScope:        txScope,
		billRepo:       billRepo,
		creditRepo:     creditRepo,
		customerRepo:   customerRepo,
		idempotencyTTL: shared.DefaultIdempotencyTTL,
		metrics:        noopMetrics{},
		logger:         logger,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SettlementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics recorder
func (s *SettlementService) SetMetrics(m LedgerMetrics) {
	if m != nil {
		s.metrics = m
	}
}

// SetIdempotencyStore enables de-duplication of payments carrying a client key
func (s *SettlementService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// RecordPayment applies a payment to a bill. The bill row is locked and
// written back with a version check, so concurrent payments against the same
// bill never compute their balance from a stale read.
func (s *SettlementService) RecordPayment(ctx context.Context, ownerID uuid.UUID, req RecordPaymentRequest) (*PaymentResultResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "record_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOwnerID, ownerID.String(),
		telemetry.SpanAttrBillID, req.BillID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
		telemetry.SpanAttrPaymentMethod, req.Method,
	)

	if req.BillID == uuid.Nil {
		return nil, shared.NewValidationError("bill_id", "Bill ID is required")
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "Payment amount must be greater than zero")
	}

	key, err := s.claim(ctx, ownerID, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	var bill *billing.Bill
	var outcome *billing.PaymentOutcome
	var txn *billing.CreditTransaction

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bill, err = repos.BillRepo().FindByIDForUpdate(ctx, ownerID, req.BillID)
		if err != nil {
			return err
		}

		outcome, err = bill.ApplyPayment(req.Amount, req.Method)
		if err != nil {
			return err
		}

		if err := repos.BillRepo().SaveWithLock(ctx, bill); err != nil {
			return shared.NewPersistenceError("update bill balance", err)
		}

		txn = billing.NewCreditTransaction(bill, billing.CreditTransactionPayment, outcome.Applied, req.Method, req.Note)
		if err := repos.CreditTransactionRepo().Create(ctx, txn); err != nil {
			return shared.NewPersistenceError("record credit transaction", err)
		}
		if err := repos.PaymentRepo().Create(ctx, billing.NewPaymentRecord(bill, outcome.Applied, req.Method)); err != nil {
			return shared.NewPersistenceError("record payment", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.release(ctx, key)
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			s.metrics.RecordConflict(ctx, ownerID, "record_payment")
		}
		s.logger.Warn("payment failed",
			zap.String("owner_id", ownerID.String()),
			zap.String("bill_id", req.BillID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if outcome.Overpaid.IsPositive() {
		s.logger.Warn("payment exceeded outstanding balance",
			zap.String("bill_id", bill.ID.String()),
			zap.String("requested", outcome.Requested.String()),
			zap.String("applied", outcome.Applied.String()),
			zap.String("overpaid", outcome.Overpaid.String()),
		)
	}
	s.logger.Info("payment recorded",
		zap.String("bill_id", bill.ID.String()),
		zap.String("amount", outcome.Applied.String()),
		zap.String("new_balance", outcome.NewBalance.String()),
		zap.String("new_status", string(outcome.NewStatus)),
	)
	s.metrics.RecordPayment(ctx, ownerID, txn.Method, outcome.Applied)
	s.publish(ctx, bill.GetDomainEvents()...)
	bill.ClearDomainEvents()

	return &PaymentResultResponse{
		BillID:         bill.ID,
		BillNumber:     bill.BillNumber,
		TransactionID:  txn.ID,
		AmountApplied:  outcome.Applied,
		OverpaidAmount: outcome.Overpaid,
		NewPaidAmount:  outcome.NewPaid,
		NewBalance:     outcome.NewBalance,
		NewStatus:      string(outcome.NewStatus),
	}, nil
}

// ListOutstanding returns bills that still carry a credit balance
func (s *SettlementService) ListOutstanding(ctx context.Context, ownerID uuid.UUID, q OutstandingBillsQuery) (*shared.Paginated[BillResponse], error) {
	filter := billing.OutstandingFilter{
		Filter:       shared.DefaultFilter(),
		CustomerID:   q.CustomerID,
		CustomerName: q.CustomerName,
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	if q.Status != "" {
		status, err := billing.ParsePaymentStatus(q.Status)
		if err != nil {
			return nil, err
		}
		if status == billing.PaymentStatusPaid {
			return nil, shared.NewValidationError("status", "Paid bills have no outstanding balance")
		}
		filter.Status = status
	}
	if q.From != nil {
		filter.Range.From = *q.From
	}
	if q.To != nil {
		filter.Range.To = *q.To
	}
	if !filter.Range.From.IsZero() && !filter.Range.To.IsZero() && filter.Range.To.Before(filter.Range.From) {
		return nil, shared.NewValidationError("to", "End date must not be before start date")
	}

	bills, total, err := s.billRepo.FindOutstanding(ctx, ownerID, filter)
	if err != nil {
		return nil, shared.NewPersistenceError("list outstanding bills", err)
	}
	result := shared.NewPaginated(ToBillResponses(bills), total, filter.Page, filter.PageSize)
	return &result, nil
}

// TransactionHistory returns a bill's credit entries, newest first
func (s *SettlementService) TransactionHistory(ctx context.Context, ownerID, billID uuid.UUID) ([]CreditTransactionResponse, error) {
	if _, err := s.billRepo.FindByIDForOwner(ctx, ownerID, billID); err != nil {
		return nil, err
	}
	txns, err := s.creditRepo.FindByBill(ctx, ownerID, billID)
	if err != nil {
		return nil, shared.NewPersistenceError("load credit transactions", err)
	}
	return ToCreditTransactionResponses(txns), nil
}

// Receivable aggregates outstanding credit across all customers
func (s *SettlementService) Receivable(ctx context.Context, ownerID uuid.UUID) (*ReceivableResponse, error) {
	summary, err := s.billRepo.SummarizeReceivable(ctx, ownerID)
	if err != nil {
		return nil, shared.NewPersistenceError("summarize receivable", err)
	}
	return &ReceivableResponse{
		TotalOutstanding: summary.TotalOutstanding,
		TotalBilled:      summary.TotalBilled,
		TotalReceived:    summary.TotalReceived,
		BillCount:        summary.BillCount,
		CustomerCount:    summary.CustomerCount,
	}, nil
}

// CustomerStatement returns a customer's bills, credit history and totals
func (s *SettlementService) CustomerStatement(ctx context.Context, ownerID, customerID uuid.UUID) (*CustomerStatementResponse, error) {
	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindByCustomer(ctx, ownerID, customerID)
	if err != nil {
		return nil, shared.NewPersistenceError("load customer bills", err)
	}
	txns, err := s.creditRepo.FindByCustomer(ctx, ownerID, customerID)
	if err != nil {
		return nil, shared.NewPersistenceError("load customer transactions", err)
	}

	resp := &CustomerStatementResponse{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		CreditLimit:      customer.CreditLimit,
		TotalBilled:      decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		Bills:            ToBillResponses(bills),
		Transactions:     ToCreditTransactionResponses(txns),
	}
	for _, b := range bills {
		resp.TotalBilled = resp.TotalBilled.Add(b.TotalAmount)
		resp.TotalPaid = resp.TotalPaid.Add(b.CreditPaidAmount)
		resp.TotalOutstanding = resp.TotalOutstanding.Add(b.CreditBalance)
	}
	return resp, nil
}

// TodayCollections totals payment entries recorded since local midnight
func (s *SettlementService) TodayCollections(ctx context.Context, ownerID uuid.UUID) (*CollectionResponse, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	summary, err := s.creditRepo.SumPayments(ctx, ownerID, shared.DateRange{From: start, To: start.AddDate(0, 0, 1)})
	if err != nil {
		return nil, shared.NewPersistenceError("sum collections", err)
	}
	return &CollectionResponse{
		Date:             start.Format("2006-01-02"),
		TransactionCount: summary.TransactionCount,
		TotalCollected:   summary.TotalAmount,
	}, nil
}

// claim reserves the idempotency key; an empty key disables de-duplication.
// When the store is unreachable the payment proceeds without it.
func (s *SettlementService) claim(ctx context.Context, ownerID uuid.UUID, clientKey string) (string, error) {
	if clientKey == "" || s.idempotency == nil {
		return "", nil
	}
	key := fmt.Sprintf("payment:%s:%s", ownerID, clientKey)
	ok, err := s.idempotency.Claim(ctx, key, s.idempotencyTTL)
	if err != nil {
		s.logger.Warn("idempotency store unavailable, continuing without de-duplication",
			zap.String("key", key), zap.Error(err))
		return "", nil
	}
	if !ok {
		return "", shared.NewConcurrencyConflict("A payment with this idempotency key was already submitted")
	}
	return key, nil
}

func (s *SettlementService) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func (s *SettlementService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish payment events", zap.Error(err))
	}
}
