package handler

import (
	appbilling "github.com/bizpulse/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one line of a CreateBillRequest
type LineItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"decimal_gt0"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"omitempty,decimal_gte0"`
}

// CreateBillRequest is the body of POST /bills
type CreateBillRequest struct {
	CustomerID           *uuid.UUID        `json:"customer_id"`
	CustomerName         string            `json:"customer_name" binding:"max=200"`
	LineItems            []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	TaxTotal             decimal.Decimal   `json:"tax_total" binding:"decimal_gte0"`
	DiscountTotal        decimal.Decimal   `json:"discount_total" binding:"decimal_gte0"`
	PaymentMethod        string            `json:"payment_method" binding:"required,oneof=cash partial credit"`
	PartialUpfrontAmount decimal.Decimal   `json:"partial_upfront_amount" binding:"decimal_gte0"`
	Notes                string            `json:"notes" binding:"max=1000"`
}

// BillHandler serves bill creation, lookup and deletion
type BillHandler struct {
	BaseHandler
	billService *appbilling.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *appbilling.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create handles POST /bills
func (h *BillHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var req CreateBillRequest
	if !h.bindJSON(c, &req) {
		return
	}

	items := make([]appbilling.LineItemRequest, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = appbilling.LineItemRequest{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		}
	}

	resp, err := h.billService.CreateBill(c.Request.Context(), ownerID, appbilling.CreateBillRequest{
		CustomerID:           req.CustomerID,
		CustomerName:         req.CustomerName,
		LineItems:            items,
		TaxTotal:             req.TaxTotal,
		DiscountTotal:        req.DiscountTotal,
		PaymentMethod:        req.PaymentMethod,
		PartialUpfrontAmount: req.PartialUpfrontAmount,
		Notes:                req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	billID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.billService.GetBill(c.Request.Context(), ownerID, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	billID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.billService.DeleteBill(c.Request.Context(), ownerID, billID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
