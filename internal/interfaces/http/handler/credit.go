package handler

import (
	appbilling "github.com/bizpulse/backend/internal/application/billing"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the body of POST /credit/payments
type RecordPaymentRequest struct {
	BillID uuid.UUID       `json:"bill_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Method string          `json:"method" binding:"max=50"`
	Note   string          `json:"note" binding:"max=500"`
}

// OutstandingQuery holds the GET /credit/bills filters
type OutstandingQuery struct {
	Status       string `form:"status" binding:"max=20"`
	CustomerID   string `form:"customer_id" binding:"omitempty,uuid"`
	CustomerName string `form:"customer_name" binding:"max=200"`
}

// CreditHandler serves credit settlement and receivable reporting
type CreditHandler struct {
	BaseHandler
	settlement *appbilling.SettlementService
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(settlement *appbilling.SettlementService) *CreditHandler {
	return &CreditHandler{settlement: settlement}
}

// RecordPayment handles POST /credit/payments.
// An Idempotency-Key header makes retries of the same payment safe.
func (h *CreditHandler) RecordPayment(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if len(key) > 128 {
		h.BadRequest(c, middleware.IdempotencyKeyHeader, "Idempotency key must be at most 128 characters")
		return
	}

	resp, err := h.settlement.RecordPayment(c.Request.Context(), ownerID, appbilling.RecordPaymentRequest{
		BillID:         req.BillID,
		Amount:         req.Amount,
		Method:         req.Method,
		Note:           req.Note,
		IdempotencyKey: key,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListOutstanding handles GET /credit/bills
func (h *CreditHandler) ListOutstanding(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var q OutstandingQuery
	if !h.bindQuery(c, &q) {
		return
	}
	from, to, ok := h.dateRangeParams(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c)

	query := appbilling.OutstandingBillsQuery{
		CustomerName: q.CustomerName,
		Status:       q.Status,
		From:         from,
		To:           to,
		Page:         page,
		PageSize:     pageSize,
	}
	if q.CustomerID != "" {
		id := uuid.MustParse(q.CustomerID)
		query.CustomerID = &id
	}

	result, err := h.settlement.ListOutstanding(c.Request.Context(), ownerID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// TransactionHistory handles GET /credit/bills/:id/transactions
func (h *CreditHandler) TransactionHistory(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	billID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	txns, err := h.settlement.TransactionHistory(c.Request.Context(), ownerID, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txns)
}

// Receivable handles GET /credit/receivable
func (h *CreditHandler) Receivable(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	resp, err := h.settlement.Receivable(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerStatement handles GET /credit/customers/:id/statement
func (h *CreditHandler) CustomerStatement(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	customerID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.settlement.CustomerStatement(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TodayCollections handles GET /credit/today
func (h *CreditHandler) TodayCollections(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	resp, err := h.settlement.TodayCollections(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
