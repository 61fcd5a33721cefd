package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appbilling "github.com/bizpulse/backend/internal/application/billing"
	appearnings "github.com/bizpulse/backend/internal/application/earnings"
	appinventory "github.com/bizpulse/backend/internal/application/inventory"
	"github.com/bizpulse/backend/internal/application/partner"
	"github.com/bizpulse/backend/internal/infrastructure/cache"
	"github.com/bizpulse/backend/internal/infrastructure/config"
	"github.com/bizpulse/backend/internal/infrastructure/persistence"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv is the full ledger stack over an in-memory sqlite database
type testEnv struct {
	t      *testing.T
	db     *persistence.Database
	router *gin.Engine
	owner  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	gdb := db.DB
	billScope := persistence.NewGormTransactionScope(gdb, 0)
	invScope := persistence.NewGormInventoryTransactionScope(gdb, 0)
	productRepo := persistence.NewGormProductRepository(gdb)
	billRepo := persistence.NewGormBillRepository(gdb)
	customerRepo := persistence.NewGormCustomerRepository(gdb)

	billSvc := appbilling.NewBillService(billScope, billRepo,
		persistence.NewGormPaymentRecordRepository(gdb), customerRepo,
		appbilling.BillServiceConfig{NumberPrefix: "BILL"}, nil)
	settlementSvc := appbilling.NewSettlementService(billScope, billRepo,
		persistence.NewGormCreditTransactionRepository(gdb), customerRepo, nil)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	settlementSvc.SetIdempotencyStore(store, 0)

	bills := NewBillHandler(billSvc)
	credit := NewCreditHandler(settlementSvc)
	earnings := NewEarningsHandler(appearnings.NewEarningsService(persistence.NewGormEarningsReader(gdb), nil))
	products := NewProductHandler(appinventory.NewStockService(invScope, productRepo, nil))
	customers := NewCustomerHandler(partner.NewCustomerService(customerRepo))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/health", NewHealthHandler(db, "test").Health)

	api := r.Group("/api/v1", middleware.OwnerScope(middleware.OwnerScopeConfig{AllowHeader: true}))
	api.POST("/bills", bills.Create)
	api.GET("/bills/:id", bills.Get)
	api.DELETE("/bills/:id", bills.Delete)
	api.POST("/credit/payments", credit.RecordPayment)
	api.GET("/credit/bills", credit.ListOutstanding)
	api.GET("/credit/bills/:id/transactions", credit.TransactionHistory)
	api.GET("/credit/receivable", credit.Receivable)
	api.GET("/credit/customers/:id/statement", credit.CustomerStatement)
	api.GET("/credit/today", credit.TodayCollections)
	api.GET("/earnings/summary", earnings.Summary)
	api.GET("/earnings/products", earnings.Products)
	api.GET("/earnings/top-products", earnings.TopProducts)
	api.GET("/products", products.List)
	api.POST("/products", products.Create)
	api.GET("/products/:id", products.Get)
	api.POST("/products/:id/restock", products.Restock)
	api.GET("/customers", customers.List)
	api.POST("/customers", customers.Create)
	api.GET("/customers/:id", customers.Get)

	return &testEnv{t: t, db: db, router: r, owner: uuid.New()}
}

// apiResponse mirrors dto.Response with raw data for per-test decoding
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		RequestID string          `json:"request_id"`
		Details   json.RawMessage `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

func (e *testEnv) do(method, path string, body any, headers ...string) (int, apiResponse) {
	e.t.Helper()
	return e.doAs(e.owner, method, path, body, headers...)
}

func (e *testEnv) doAs(owner uuid.UUID, method, path string, body any, headers ...string) (int, apiResponse) {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.OwnerIDHeader, owner.String())
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func decodeData[T any](t *testing.T, resp apiResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	return v
}

// seedProduct creates a product through the API and returns its id
func (e *testEnv) seedProduct(name, price, cost, stock string) uuid.UUID {
	e.t.Helper()
	code, resp := e.do(http.MethodPost, "/api/v1/products", map[string]any{
		"name":              name,
		"category":          "general",
		"unit_price":        price,
		"unit_cost":         cost,
		"stock_quantity":    stock,
		"reorder_threshold": "2",
	})
	require.Equal(e.t, http.StatusCreated, code)
	return decodeData[struct {
		ID uuid.UUID `json:"id"`
	}](e.t, resp).ID
}

type billCreated struct {
	BillID           uuid.UUID `json:"bill_id"`
	SequenceNumber   string    `json:"sequence_number"`
	TotalAmount      string    `json:"total_amount"`
	PaymentStatus    string    `json:"payment_status"`
	CreditPaidAmount string    `json:"credit_paid_amount"`
	CreditBalance    string    `json:"credit_balance"`
}

func (e *testEnv) createBill(productID uuid.UUID, qty, method, upfront string) billCreated {
	e.t.Helper()
	body := map[string]any{
		"line_items":     []map[string]any{{"product_id": productID, "quantity": qty}},
		"payment_method": method,
		"customer_name":  "Asha",
	}
	if upfront != "" {
		body["partial_upfront_amount"] = upfront
	}
	code, resp := e.do(http.MethodPost, "/api/v1/bills", body)
	require.Equal(e.t, http.StatusCreated, code, "%+v", resp.Error)
	return decodeData[billCreated](e.t, resp)
}

type productView struct {
	ID            uuid.UUID `json:"id"`
	StockQuantity string    `json:"stock_quantity"`
}

func (e *testEnv) stockOf(productID uuid.UUID) string {
	e.t.Helper()
	code, resp := e.do(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	require.Equal(e.t, http.StatusOK, code)
	return decodeData[productView](e.t, resp).StockQuantity
}
