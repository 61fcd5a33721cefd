package handler

import (
	"strconv"

	appearnings "github.com/bizpulse/backend/internal/application/earnings"
	"github.com/gin-gonic/gin"
)

// EarningsHandler serves the profit realization reports
type EarningsHandler struct {
	BaseHandler
	earningsService *appearnings.EarningsService
}

// NewEarningsHandler creates a new EarningsHandler
func NewEarningsHandler(earningsService *appearnings.EarningsService) *EarningsHandler {
	return &EarningsHandler{earningsService: earningsService}
}

// query reads date_filter or from/to; explicit dates win
func (h *EarningsHandler) query(c *gin.Context) (appearnings.Query, bool) {
	from, to, ok := h.dateRangeParams(c)
	if !ok {
		return appearnings.Query{}, false
	}
	return appearnings.Query{
		DateFilter: c.Query("date_filter"),
		From:       from,
		To:         to,
	}, true
}

// Summary handles GET /earnings/summary
func (h *EarningsHandler) Summary(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}
	resp, err := h.earningsService.Summary(c.Request.Context(), ownerID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Products handles GET /earnings/products
func (h *EarningsHandler) Products(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}
	resp, err := h.earningsService.ProductEarnings(c.Request.Context(), ownerID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TopProducts handles GET /earnings/top-products
func (h *EarningsHandler) TopProducts(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}
	limit := appearnings.DefaultTopProductsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			h.BadRequest(c, "limit", "Limit must be between 1 and 50")
			return
		}
		limit = n
	}
	resp, err := h.earningsService.TopProducts(c.Request.Context(), ownerID, q, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
