package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bizpulse/backend/internal/infrastructure/auth"
	"github.com/bizpulse/backend/internal/infrastructure/logger"
	"github.com/bizpulse/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Owner scope keys and headers
const (
	OwnerIDKey           = "owner_id"
	OwnerIDHeader        = "X-Owner-ID"
	IdempotencyKeyHeader = "Idempotency-Key"
	AuthHeaderKey        = "Authorization"
	BearerPrefix         = "Bearer "
)

// OwnerScopeConfig configures how the owner of a request is resolved
type OwnerScopeConfig struct {
	// JWTService validates bearer tokens. When nil or disabled, only the
	// X-Owner-ID header is consulted.
	JWTService *auth.JWTService
	// AllowHeader accepts X-Owner-ID when no bearer token is sent
	AllowHeader bool
	Logger      *zap.Logger
}

// OwnerScope resolves the owner id of the request from the bearer token's
// owner_id claim, falling back to the X-Owner-ID header. Requests without a
// valid owner are rejected with 401.
func OwnerScope(cfg OwnerScopeConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	jwtOn := cfg.JWTService != nil && cfg.JWTService.Enabled()

	return func(c *gin.Context) {
		var ownerID uuid.UUID

		authHeader := c.GetHeader(AuthHeaderKey)
		switch {
		case authHeader != "" && jwtOn:
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				abortUnauthorized(c, "Invalid authorization header format")
				return
			}
			claims, err := cfg.JWTService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
			if err != nil {
				log.Debug("Token rejected", zap.String("request_id", GetRequestID(c)), zap.Error(err))
				abortUnauthorized(c, tokenErrorMessage(err))
				return
			}
			// ValidateToken guarantees a parseable owner claim
			ownerID, _ = claims.OwnerUUID()

		case cfg.AllowHeader && c.GetHeader(OwnerIDHeader) != "":
			id, err := uuid.Parse(c.GetHeader(OwnerIDHeader))
			if err != nil || id == uuid.Nil {
				abortUnauthorized(c, "Invalid owner id")
				return
			}
			ownerID = id

		default:
			abortUnauthorized(c, "Missing owner credentials")
			return
		}

		c.Set(OwnerIDKey, ownerID.String())
		c.Request = c.Request.WithContext(logger.WithOwnerID(c.Request.Context(), ownerID.String()))
		c.Next()
	}
}

// GetOwnerID returns the owner resolved by OwnerScope
func GetOwnerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(OwnerIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token is not yet valid"
	case errors.Is(err, auth.ErrMissingOwnerID):
		return "Token carries no owner"
	default:
		return "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.ErrCodeUnauthorized, message, GetRequestID(c), nil,
	))
}
