package persistence

import (
	"context"
	"fmt"
	"time"

	appbilling "github.com/bizpulse/backend/internal/application/billing"
	appinv "github.com/bizpulse/backend/internal/application/inventory"
	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope implements the billing TransactionScope using GORM transactions.
// Every repository handed to fn shares the same *gorm.DB transaction.
type GormTransactionScope struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormTransactionScope creates a new GormTransactionScope.
// On postgres a positive lockTimeout bounds how long a statement waits for row locks.
func NewGormTransactionScope(db *gorm.DB, lockTimeout time.Duration) *GormTransactionScope {
	return &GormTransactionScope{db: db, lockTimeout: lockTimeout}
}

// Execute runs fn within a database transaction.
// If fn returns an error the transaction is rolled back, otherwise committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setLockTimeout(tx, s.lockTimeout); err != nil {
			return err
		}
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	return translateError(err)
}

// GormInventoryTransactionScope implements the inventory TransactionScope
type GormInventoryTransactionScope struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB, lockTimeout time.Duration) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db, lockTimeout: lockTimeout}
}

// Execute runs fn within a database transaction.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setLockTimeout(tx, s.lockTimeout); err != nil {
			return err
		}
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	return translateError(err)
}

func setLockTimeout(tx *gorm.DB, d time.Duration) error {
	if d <= 0 || tx.Dialector.Name() != "postgres" {
		return nil
	}
	// SET does not accept bind parameters
	if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())).Error; err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return nil
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// BillRepo returns the bill repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BillRepo() billing.BillRepository {
	return NewGormBillRepository(r.tx)
}

// PaymentRepo returns the payment record repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PaymentRepo() billing.PaymentRecordRepository {
	return NewGormPaymentRecordRepository(r.tx)
}

// CreditTransactionRepo returns the credit transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CreditTransactionRepo() billing.CreditTransactionRepository {
	return NewGormCreditTransactionRepository(r.tx)
}

// SalesEntryRepo returns the sales entry repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SalesEntryRepo() billing.SalesEntryRepository {
	return NewGormSalesEntryRepository(r.tx)
}

var (
	_ appbilling.TransactionScope          = (*GormTransactionScope)(nil)
	_ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appinv.TransactionScope              = (*GormInventoryTransactionScope)(nil)
	_ appinv.TransactionalRepositories     = (*gormTransactionalRepositories)(nil)
)
