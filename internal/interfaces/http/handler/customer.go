package handler

import (
	"github.com/bizpulse/backend/internal/application/partner"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the body of POST /customers
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Phone       string          `json:"phone" binding:"max=50"`
	Email       string          `json:"email" binding:"omitempty,email,max=200"`
	Address     string          `json:"address" binding:"max=500"`
	CreditLimit decimal.Decimal `json:"credit_limit" binding:"decimal_gte0"`
}

// CustomerHandler serves customer registration and lookup
type CustomerHandler struct {
	BaseHandler
	customerService *partner.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partner.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	var req CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.customerService.Create(c.Request.Context(), ownerID, partner.CreateCustomerRequest{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	customerID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.customerService.GetByID(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	filter := shared.DefaultFilter()
	filter.Page = page
	filter.PageSize = pageSize
	filter.Search = c.Query("search")

	customers, err := h.customerService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}
