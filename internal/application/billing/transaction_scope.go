package billing

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the ledger repositories.
// Every repository obtained inside Execute shares one database transaction,
// which is committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger repositories within a transaction.
//
// ProductRepo is only used through inventory.StockLedger so that stock
// quantities keep a single writer.
type TransactionalRepositories interface {
	ProductRepo() inventory.ProductRepository
	BillRepo() billing.BillRepository
	PaymentRepo() billing.PaymentRecordRepository
	CreditTransactionRepo() billing.CreditTransactionRepository
	SalesEntryRepo() billing.SalesEntryRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	productRepo inventory.ProductRepository
	billRepo    billing.BillRepository
	paymentRepo billing.PaymentRecordRepository
	creditRepo  billing.CreditTransactionRepository
	salesRepo   billing.SalesEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo inventory.ProductRepository,
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRecordRepository,
	creditRepo billing.CreditTransactionRepository,
	salesRepo billing.SalesEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		creditRepo:  creditRepo,
		salesRepo:   salesRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository { return s.productRepo }

func (s *NoOpTransactionScope) BillRepo() billing.BillRepository { return s.billRepo }

func (s *NoOpTransactionScope) PaymentRepo() billing.PaymentRecordRepository { return s.paymentRepo }

func (s *NoOpTransactionScope) CreditTransactionRepo() billing.CreditTransactionRepository {
	return s.creditRepo
}

func (s *NoOpTransactionScope) SalesEntryRepo() billing.SalesEntryRepository { return s.salesRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
