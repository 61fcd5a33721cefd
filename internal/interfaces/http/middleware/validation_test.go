package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bizpulse/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountLine struct {
	Quantity decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
}

type amountRequest struct {
	Amount   decimal.Decimal  `json:"amount" binding:"decimal_gt0"`
	Discount decimal.Decimal  `json:"discount" binding:"decimal_gte0"`
	Price    *decimal.Decimal `json:"price" binding:"omitempty,decimal_gte0"`
	Method   string           `json:"method" binding:"required,oneof=cash card"`
	Lines    []amountLine     `json:"lines" binding:"required,min=1,dive"`
}

func bindAmount(t *testing.T, body string) (*httptest.ResponseRecorder, *amountRequest) {
	t.Helper()
	SetupValidator()

	var got amountRequest
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&got); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-v")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, &got
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp struct {
		Error struct {
			Code      string                 `json:"code"`
			Message   string                 `json:"message"`
			RequestID string                 `json:"request_id"`
			Details   []dto.ValidationDetail `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return dto.ErrorInfo{
		Code:      resp.Error.Code,
		Message:   resp.Error.Message,
		RequestID: resp.Error.RequestID,
		Details:   resp.Error.Details,
	}
}

func TestValidation_DecimalTags(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		w, got := bindAmount(t, `{"amount":"10.50","discount":"0","price":"3","method":"cash","lines":[{"quantity":1}]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("10.5")))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		w, _ := bindAmount(t, `{"amount":"0","discount":"0","method":"cash","lines":[{"quantity":1}]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		assert.Equal(t, "req-v", info.RequestID)
		details := info.Details.([]dto.ValidationDetail)
		require.Len(t, details, 1)
		assert.Equal(t, "amount", details[0].Field)
		assert.Equal(t, "Must be greater than 0", details[0].Message)
	})

	t.Run("negative discount and price rejected", func(t *testing.T) {
		w, _ := bindAmount(t, `{"amount":"1","discount":"-1","price":"-2","method":"cash","lines":[{"quantity":1}]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		details := decodeError(t, w).Details.([]dto.ValidationDetail)
		fields := []string{}
		for _, d := range details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"discount", "price"}, fields)
	})

	t.Run("nested line path", func(t *testing.T) {
		w, _ := bindAmount(t, `{"amount":"1","discount":"0","method":"cash","lines":[{"quantity":1},{"quantity":"-3"}]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		details := decodeError(t, w).Details.([]dto.ValidationDetail)
		require.Len(t, details, 1)
		assert.Equal(t, "lines[1].quantity", details[0].Field)
	})

	t.Run("empty lines and bad method", func(t *testing.T) {
		w, _ := bindAmount(t, `{"amount":"1","discount":"0","method":"cheque","lines":[]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		details := decodeError(t, w).Details.([]dto.ValidationDetail)
		assert.Len(t, details, 2)
	})

	t.Run("malformed json", func(t *testing.T) {
		w, _ := bindAmount(t, `{"amount":`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		assert.Equal(t, "Malformed request body", info.Message)
	})
}
