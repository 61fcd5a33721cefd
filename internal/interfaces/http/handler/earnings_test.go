package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarningsHandler_Summary(t *testing.T) {
	env := newTestEnv(t)
	productID := env.seedProduct("Rice 5kg", "10", "6", "20")
	env.createBill(productID, "2", "cash", "")

	code, resp := env.do(http.MethodGet, "/api/v1/earnings/summary?date_filter=today", nil)
	require.Equal(t, http.StatusOK, code)

	summary := decodeData[struct {
		RealizedRevenue  string `json:"realized_revenue"`
		RealizedProfit   string `json:"realized_profit"`
		TransactionCount int64  `json:"transaction_count"`
	}](t, resp)
	assert.Equal(t, "20", summary.RealizedRevenue)
	assert.Equal(t, "8", summary.RealizedProfit)
	assert.Equal(t, int64(1), summary.TransactionCount)
}

func TestEarningsHandler_Products(t *testing.T) {
	env := newTestEnv(t)
	rice := env.seedProduct("Rice", "10", "6", "20")
	oil := env.seedProduct("Oil", "50", "45", "20")
	env.createBill(rice, "2", "cash", "")
	env.createBill(oil, "1", "cash", "")

	code, resp := env.do(http.MethodGet, "/api/v1/earnings/products", nil)
	require.Equal(t, http.StatusOK, code)
	got := decodeData[struct {
		Count    int `json:"count"`
		Products []struct {
			ProductName string `json:"product_name"`
			Profit      string `json:"profit"`
		} `json:"products"`
	}](t, resp)
	require.Equal(t, 2, got.Count)
	assert.Equal(t, "Rice", got.Products[0].ProductName)
	assert.Equal(t, "8", got.Products[0].Profit)

	code, resp = env.do(http.MethodGet, "/api/v1/earnings/top-products?limit=1", nil)
	require.Equal(t, http.StatusOK, code)
	top := decodeData[struct {
		Top []struct {
			ProductName string `json:"product_name"`
		} `json:"top"`
	}](t, resp)
	require.Len(t, top.Top, 1)
	assert.Equal(t, "Rice", top.Top[0].ProductName)
}

func TestEarningsHandler_BadParams(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{"unknown date filter", "/api/v1/earnings/summary?date_filter=decade", "date_filter"},
		{"malformed from", "/api/v1/earnings/summary?from=03/01/2024", "from"},
		{"inverted range", "/api/v1/earnings/products?from=2024-03-10&to=2024-03-01", "to"},
		{"limit too large", "/api/v1/earnings/top-products?limit=500", "limit"},
		{"limit not a number", "/api/v1/earnings/top-products?limit=few", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.do(http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.JSONEq(t, `{"field":"`+tt.field+`"}`, string(resp.Error.Details))
		})
	}
}
