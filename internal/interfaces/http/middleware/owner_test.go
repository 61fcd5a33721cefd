package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizpulse/backend/internal/infrastructure/auth"
	"github.com/bizpulse/backend/internal/infrastructure/config"
	"github.com/bizpulse/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ownerCapture struct {
	ownerID    uuid.UUID
	found      bool
	ctxOwnerID string
}

func newOwnerRouter(cfg OwnerScopeConfig, captured *ownerCapture) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), OwnerScope(cfg))
	router.GET("/test", func(c *gin.Context) {
		captured.ownerID, captured.found = GetOwnerID(c)
		captured.ctxOwnerID = logger.GetOwnerID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return router
}

func TestOwnerScope_Bearer(t *testing.T) {
	jwtSvc := auth.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "bizpulse"})
	owner := uuid.New()
	token, err := jwtSvc.GenerateToken(owner, time.Hour)
	require.NoError(t, err)

	captured := &ownerCapture{}
	router := newOwnerRouter(OwnerScopeConfig{JWTService: jwtSvc, AllowHeader: true}, captured)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		// the claim wins over the header
		req.Header.Set(OwnerIDHeader, uuid.NewString())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, captured.found)
		assert.Equal(t, owner, captured.ownerID)
		assert.Equal(t, owner.String(), captured.ctxOwnerID)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := jwtSvc.GenerateToken(owner, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+expired)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})
}

func TestOwnerScope_Header(t *testing.T) {
	captured := &ownerCapture{}
	router := newOwnerRouter(OwnerScopeConfig{AllowHeader: true}, captured)

	t.Run("valid header", func(t *testing.T) {
		owner := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(OwnerIDHeader, owner.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, owner, captured.ownerID)
	})

	t.Run("nil uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(OwnerIDHeader, uuid.Nil.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("not a uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(OwnerIDHeader, "shop-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Missing owner credentials")
	})
}

func TestOwnerScope_HeaderDisallowed(t *testing.T) {
	captured := &ownerCapture{}
	router := newOwnerRouter(OwnerScopeConfig{}, captured)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(OwnerIDHeader, uuid.NewString())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.found)
}

func TestGetOwnerID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetOwnerID(c)
	assert.False(t, ok)

	c.Set(OwnerIDKey, "garbage")
	_, ok = GetOwnerID(c)
	assert.False(t, ok)
}
