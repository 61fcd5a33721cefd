package handler

import (
	appinventory "github.com/bizpulse/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the body of POST /products
type CreateProductRequest struct {
	Name             string          `json:"name" binding:"required,min=1,max=200"`
	Category         string          `json:"category" binding:"max=100"`
	UnitPrice        decimal.Decimal `json:"unit_price" binding:"decimal_gte0"`
	UnitCost         decimal.Decimal `json:"unit_cost" binding:"decimal_gte0"`
	StockQuantity    decimal.Decimal `json:"stock_quantity" binding:"decimal_gte0"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold" binding:"decimal_gte0"`
}

// RestockRequest is the body of POST /products/:id/restock
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
}

// ProductListQuery holds the GET /products filters
type ProductListQuery struct {
	Search       string `form:"search" binding:"max=100"`
	Category     string `form:"category" binding:"max=100"`
	BelowReorder bool   `form:"below_reorder"`
}

// ProductHandler serves the product catalog and restocking
type ProductHandler struct {
	BaseHandler
	stockService *appinventory.StockService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(stockService *appinventory.StockService) *ProductHandler {
	return &ProductHandler{stockService: stockService}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var q ProductListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	page, pageSize := pageParams(c)

	result, err := h.stockService.ListProducts(c.Request.Context(), ownerID, appinventory.ProductListFilter{
		Search:       q.Search,
		Category:     q.Category,
		BelowReorder: q.BelowReorder,
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var req CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.stockService.CreateProduct(c.Request.Context(), ownerID, appinventory.CreateProductRequest{
		Name:             req.Name,
		Category:         req.Category,
		UnitPrice:        req.UnitPrice,
		UnitCost:         req.UnitCost,
		StockQuantity:    req.StockQuantity,
		ReorderThreshold: req.ReorderThreshold,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.stockService.GetProduct(c.Request.Context(), ownerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Restock handles POST /products/:id/restock
func (h *ProductHandler) Restock(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req RestockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.stockService.Restock(c.Request.Context(), ownerID, productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
