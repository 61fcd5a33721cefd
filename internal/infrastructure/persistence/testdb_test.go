package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with the ledger schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true, TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// newMockDB opens a postgres-dialect gorm DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, stock, threshold string) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(ownerID, name, "general", dec("10"), dec("6"), dec(stock), dec(threshold))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(t.Context(), p))
	return p
}

type billOpts struct {
	customerID   *uuid.UUID
	customerName string
	method       billing.PaymentMethod
	upfront      string
	createdAt    time.Time
}

func seedBill(t *testing.T, db *gorm.DB, ownerID uuid.UUID, p *inventory.Product, qty string, opts billOpts) *billing.Bill {
	t.Helper()
	upfront := decimal.Zero
	if opts.upfront != "" {
		upfront = dec(opts.upfront)
	}
	b, err := billing.NewBill(billing.BillInput{
		OwnerID:      ownerID,
		CustomerID:   opts.customerID,
		CustomerName: opts.customerName,
		Lines: []billing.LineInput{{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
			Quantity:    dec(qty),
			UnitPrice:   p.UnitPrice,
			UnitCost:    p.UnitCost,
		}},
		Method:       opts.method,
		Upfront:      upfront,
		NumberPrefix: "BILL",
	})
	require.NoError(t, err)
	if !opts.createdAt.IsZero() {
		b.CreatedAt = opts.createdAt
		b.UpdatedAt = opts.createdAt
	}
	require.NoError(t, NewGormBillRepository(db).Create(t.Context(), b))
	return b
}
