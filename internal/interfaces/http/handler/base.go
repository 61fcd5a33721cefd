package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/logger"
	"github.com/bizpulse/backend/internal/interfaces/http/dto"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pagination bounds for list endpoints
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context, falling back to the header
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, getRequestID(c), details))
}

// BadRequest sends a 400 with the validation code and the offending field
func (h *BaseHandler) BadRequest(c *gin.Context, field, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, message, shared.FieldDetail{Field: field})
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message, nil)
}

// HandleError converts an error into a response. Domain errors keep their code
// and details; anything else is an opaque 500. Server-side failures are logged.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("Request failed",
				zap.String("code", code), zap.Error(err))
		}
		h.Error(c, status, code, domainErr.Message, domainErr.Details)
		return
	}

	logger.L(c.Request.Context()).Error("Unexpected error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred", nil)
}

// bindJSON binds and validates the body, writing the 400 itself on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds and validates query parameters
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// ownerID returns the owner resolved by the owner-scope middleware
func (h *BaseHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetOwnerID(c)
	if !ok {
		h.Unauthorized(c, "Owner scope is missing")
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a path parameter as a UUID
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, name, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseDateParam accepts YYYY-MM-DD or RFC 3339. Empty yields nil.
func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dateRangeParams reads the from/to query parameters
func (h *BaseHandler) dateRangeParams(c *gin.Context) (from, to *time.Time, ok bool) {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "from", "Date must be YYYY-MM-DD or RFC 3339")
		return nil, nil, false
	}
	to, err = parseDateParam(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "to", "Date must be YYYY-MM-DD or RFC 3339")
		return nil, nil, false
	}
	return from, to, true
}

// pageParams reads page/page_size with defaults and an upper bound
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
