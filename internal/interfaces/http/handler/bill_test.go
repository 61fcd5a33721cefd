package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillHandler_CreateCash(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct("Rice 5kg", "10", "6", "10")

	bill := env.createBill(productID, "2", "cash", "")

	assert.NotEqual(t, uuid.Nil, bill.BillID)
	assert.NotEmpty(t, bill.SequenceNumber)
	assert.Equal(t, "20", bill.TotalAmount)
	assert.Equal(t, "PAID", bill.PaymentStatus)
	assert.Equal(t, "0", bill.CreditBalance)
	assert.Equal(t, "8", env.stockOf(productID))
}

func TestBillHandler_CreatePartial(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct("Oil 1L", "10", "6", "10")

	bill := env.createBill(productID, "3", "partial", "10")

	assert.Equal(t, "30", bill.TotalAmount)
	assert.Equal(t, "PARTIAL", bill.PaymentStatus)
	assert.Equal(t, "10", bill.CreditPaidAmount)
	assert.Equal(t, "20", bill.CreditBalance)
}

func TestBillHandler_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct("Sugar", "10", "6", "10")

	code, resp := env.do(http.MethodPost, "/api/v1/bills", map[string]any{
		"line_items":     []map[string]any{{"product_id": productID, "quantity": "50"}},
		"payment_method": "cash",
	})

	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)

	var shortages []struct {
		ProductID uuid.UUID `json:"product_id"`
		Requested string    `json:"requested"`
		Available string    `json:"available"`
		Shortage  string    `json:"shortage"`
	}
	require.NoError(t, json.Unmarshal(resp.Error.Details, &shortages))
	require.Len(t, shortages, 1)
	assert.Equal(t, productID, shortages[0].ProductID)
	assert.Equal(t, "50", shortages[0].Requested)
	assert.Equal(t, "10", shortages[0].Available)
	assert.Equal(t, "40", shortages[0].Shortage)

	// nothing was written
	assert.Equal(t, "10", env.stockOf(productID))
}

func TestBillHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct("Tea", "10", "6", "10")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"no lines", map[string]any{"line_items": []any{}, "payment_method": "cash"}},
		{"zero quantity", map[string]any{
			"line_items":     []map[string]any{{"product_id": productID, "quantity": "0"}},
			"payment_method": "cash",
		}},
		{"unknown method", map[string]any{
			"line_items":     []map[string]any{{"product_id": productID, "quantity": "1"}},
			"payment_method": "barter",
		}},
		{"negative tax", map[string]any{
			"line_items":     []map[string]any{{"product_id": productID, "quantity": "1"}},
			"payment_method": "cash",
			"tax_total":      "-1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.do(http.MethodPost, "/api/v1/bills", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		})
	}
}

func TestBillHandler_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(http.MethodPost, "/api/v1/bills", map[string]any{
		"line_items":     []map[string]any{{"product_id": uuid.New(), "quantity": "1"}},
		"payment_method": "cash",
	})

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestBillHandler_GetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct("Flour", "10", "6", "10")
	bill := env.createBill(productID, "4", "credit", "")
	path := "/api/v1/bills/" + bill.BillID.String()

	code, resp := env.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, code)
	got := decodeData[struct {
		BillNumber    string `json:"bill_number"`
		PaymentStatus string `json:"payment_status"`
		Items         []struct {
			ProductID uuid.UUID `json:"product_id"`
			Quantity  string    `json:"quantity"`
		} `json:"items"`
	}](t, resp)
	assert.Equal(t, bill.SequenceNumber, got.BillNumber)
	assert.Equal(t, "UNPAID", got.PaymentStatus)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "4", got.Items[0].Quantity)

	// other owners cannot see it
	code, _ = env.doAs(uuid.New(), http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = env.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, "10", env.stockOf(productID))

	code, resp = env.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	code, _ = env.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBillHandler_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(http.MethodGet, "/api/v1/bills/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.JSONEq(t, `{"field":"id"}`, string(resp.Error.Details))
}
