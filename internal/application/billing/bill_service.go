package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/domain/partner"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillServiceConfig holds bill numbering and naming settings
type BillServiceConfig struct {
	NumberPrefix       string
	WalkInCustomerName string
}

// BillService creates, reads and reverses bills
type BillService struct {
	txScope        TransactionScope
	billRepo       billing.BillRepository
	paymentRepo    billing.PaymentRecordRepository
	customerRepo   partner.CustomerRepository
	stockLedger    *inventory.StockLedger
	eventPublisher shared.EventPublisher
	metrics        LedgerMetrics
	logger         *zap.Logger
	cfg            BillServiceConfig
}

// NewBillService creates a new BillService
func NewBillService(
	txScope TransactionScope,
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRecordRepository,
	customerRepo partner.CustomerRepository,
	cfg BillServiceConfig,
	logger *zap.Logger,
) *BillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WalkInCustomerName == "" {
		cfg.WalkInCustomerName = billing.DefaultWalkInCustomerName
	}
	return &BillService{
		txScope:      txScope,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		stockLedger:  inventory.NewStockLedger(),
		metrics:      noopMetrics{},
		logger:       logger,
		cfg:          cfg,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *BillService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics recorder
func (s *BillService) SetMetrics(m LedgerMetrics) {
	if m != nil {
		s.metrics = m
	}
}

// CreateBill validates stock, computes totals and writes the bill, its line
// items, stock decrements, sales entries and settlement rows in one transaction.
func (s *BillService) CreateBill(ctx context.Context, ownerID uuid.UUID, req CreateBillRequest) (*BillCreatedResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOwnerID, ownerID.String(),
		telemetry.SpanAttrPaymentMethod, req.PaymentMethod,
		telemetry.SpanAttrItemCount, len(req.LineItems),
	)

	method, err := billing.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := validateLineRequests(req.LineItems); err != nil {
		return nil, err
	}

	customerName := req.CustomerName
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, *req.CustomerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("customer", req.CustomerID.String())
			}
			return nil, shared.NewPersistenceError("load customer", err)
		}
		customerName = customer.Name
	}
	if customerName == "" {
		customerName = s.cfg.WalkInCustomerName
	}

	var bill *billing.Bill
	var stockEvents []shared.DomainEvent

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := distinctProductIDs(req.LineItems)
		products, err := repos.ProductRepo().FindByIDsForUpdate(ctx, ownerID, ids)
		if err != nil {
			return shared.NewPersistenceError("load products", err)
		}
		byID := make(map[uuid.UUID]*inventory.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return shared.NewNotFoundError("product", id.String())
			}
		}

		lines := make([]billing.LineInput, 0, len(req.LineItems))
		for _, li := range req.LineItems {
			p := byID[li.ProductID]
			price := p.UnitPrice
			if li.UnitPrice != nil {
				price = *li.UnitPrice
			}
			lines = append(lines, billing.LineInput{
				ProductID:   p.ID,
				ProductName: p.Name,
				Category:    p.Category,
				Quantity:    li.Quantity,
				UnitPrice:   price,
				UnitCost:    p.UnitCost,
			})
		}

		bill, err = billing.NewBill(billing.BillInput{
			OwnerID:       ownerID,
			CustomerID:    req.CustomerID,
			CustomerName:  customerName,
			Lines:         lines,
			TaxTotal:      req.TaxTotal,
			DiscountTotal: req.DiscountTotal,
			Method:        method,
			Upfront:       req.PartialUpfrontAmount,
			Notes:         req.Notes,
			NumberPrefix:  s.cfg.NumberPrefix,
		})
		if err != nil {
			return err
		}

		requested, order := bill.RequestedQuantities()
		if shortages := inventory.CheckAvailability(byID, requested, order); len(shortages) > 0 {
			return inventory.NewInsufficientStockError(shortages)
		}

		if err := repos.BillRepo().Create(ctx, bill); err != nil {
			return shared.NewPersistenceError("persist bill", err)
		}

		for _, item := range bill.Items {
			if _, err := s.stockLedger.Decrement(ctx, repos.ProductRepo(), byID[item.ProductID], item.Quantity); err != nil {
				return shared.NewPersistenceError("decrement stock", err)
			}
		}

		if err := repos.SalesEntryRepo().CreateBatch(ctx, billing.NewSalesEntries(bill)); err != nil {
			return shared.NewPersistenceError("record sales entries", err)
		}

		payments, credits := billing.InitialEntries(bill)
		if err := repos.PaymentRepo().Create(ctx, payments...); err != nil {
			return shared.NewPersistenceError("record payments", err)
		}
		if err := repos.CreditTransactionRepo().Create(ctx, credits...); err != nil {
			return shared.NewPersistenceError("record credit transactions", err)
		}

		for _, id := range ids {
			p := byID[id]
			stockEvents = append(stockEvents, p.GetDomainEvents()...)
			p.ClearDomainEvents()
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.recordFailure(ctx, ownerID, "create_bill", err)
		s.logger.Warn("bill creation failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("bill_number", bill.BillNumber),
		zap.String("total_amount", bill.TotalAmount.String()),
		zap.String("payment_status", string(bill.PaymentStatus)),
	)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrBillID, bill.ID.String(),
		telemetry.SpanAttrBillNumber, bill.BillNumber,
		telemetry.SpanAttrAmount, bill.TotalAmount.String(),
	)
	s.metrics.RecordBillCreated(ctx, ownerID, string(bill.PaymentMethod), bill.TotalAmount)
	s.publish(ctx, append(bill.GetDomainEvents(), stockEvents...)...)
	bill.ClearDomainEvents()

	return ToBillCreatedResponse(bill), nil
}

// GetBill returns a bill with its line items and payments
func (s *BillService) GetBill(ctx context.Context, ownerID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForOwner(ctx, ownerID, billID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByBill(ctx, ownerID, billID)
	if err != nil {
		return nil, shared.NewPersistenceError("load payments", err)
	}

	resp := ToBillResponse(bill)
	resp.Payments = ToPaymentRecordResponses(payments)
	return &resp, nil
}

// DeleteBill reverses a bill: every line's quantity goes back to stock and
// the bill with all dependent rows is removed, in one transaction.
func (s *BillService) DeleteBill(ctx context.Context, ownerID, billID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOwnerID, ownerID.String(), telemetry.SpanAttrBillID, billID.String())

	var bill *billing.Bill
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bill, err = repos.BillRepo().FindByIDForUpdate(ctx, ownerID, billID)
		if err != nil {
			return err
		}

		// lock in the same order CreateBill does
		ids := make([]uuid.UUID, 0, len(bill.Items))
		seen := make(map[uuid.UUID]bool)
		for _, item := range bill.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
		sortIDs(ids)
		if _, err := repos.ProductRepo().FindByIDsForUpdate(ctx, ownerID, ids); err != nil {
			return shared.NewPersistenceError("lock products", err)
		}

		for _, item := range bill.Items {
			if _, err := s.stockLedger.Increment(ctx, repos.ProductRepo(), ownerID, item.ProductID, item.Quantity); err != nil {
				return shared.NewPersistenceError("restore stock", err)
			}
		}

		if err := repos.PaymentRepo().DeleteByBill(ctx, ownerID, billID); err != nil {
			return shared.NewPersistenceError("remove payments", err)
		}
		if err := repos.SalesEntryRepo().DeleteByBill(ctx, ownerID, billID); err != nil {
			return shared.NewPersistenceError("remove sales entries", err)
		}
		if err := repos.CreditTransactionRepo().DeleteByBill(ctx, ownerID, billID); err != nil {
			return shared.NewPersistenceError("remove credit transactions", err)
		}
		if err := repos.BillRepo().Delete(ctx, ownerID, billID); err != nil {
			return shared.NewPersistenceError("remove bill", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.recordFailure(ctx, ownerID, "delete_bill", err)
		return err
	}

	s.logger.Info("bill deleted",
		zap.String("bill_id", bill.ID.String()),
		zap.String("bill_number", bill.BillNumber),
		zap.Int("restored_items", len(bill.Items)),
	)
	s.metrics.RecordBillDeleted(ctx, ownerID)
	bill.MarkDeleted()
	s.publish(ctx, bill.GetDomainEvents()...)
	bill.ClearDomainEvents()
	return nil
}

func (s *BillService) recordFailure(ctx context.Context, ownerID uuid.UUID, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrInsufficientStock):
		s.metrics.RecordStockShortage(ctx, ownerID)
	case errors.Is(err, shared.ErrConcurrencyConflict):
		s.metrics.RecordConflict(ctx, ownerID, op)
	}
}

// publish is fire-and-forget: a failing subscriber never fails the committed bill
func (s *BillService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish bill events", zap.Error(err))
	}
}

func validateLineRequests(items []LineItemRequest) error {
	if len(items) == 0 {
		return shared.NewValidationError("line_items", "Bill must have at least one line item")
	}
	for i, li := range items {
		field := fmt.Sprintf("line_items[%d]", i)
		if li.ProductID == uuid.Nil {
			return shared.NewValidationError(field+".product_id", "Product ID is required")
		}
		if !li.Quantity.IsPositive() {
			return shared.NewValidationError(field+".quantity", "Quantity must be positive")
		}
		if li.UnitPrice != nil && li.UnitPrice.IsNegative() {
			return shared.NewValidationError(field+".unit_price", "Unit price cannot be negative")
		}
	}
	return nil
}

// distinctProductIDs returns the referenced product ids in ascending order,
// the order row locks are taken in
func distinctProductIDs(items []LineItemRequest) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, li := range items {
		if !seen[li.ProductID] {
			seen[li.ProductID] = true
			ids = append(ids, li.ProductID)
		}
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
