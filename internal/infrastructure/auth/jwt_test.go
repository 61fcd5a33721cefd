package auth

import (
	"testing"
	"time"

	"github.com/bizpulse/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		Issuer: "test-issuer",
	})
}

func TestJWTService_Enabled(t *testing.T) {
	assert.True(t, newTestJWTService().Enabled())
	assert.False(t, NewJWTService(config.JWTConfig{}).Enabled())
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()
	ownerID := uuid.New()

	token, err := svc.GenerateToken(ownerID, 15*time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID.String(), claims.OwnerID)
	assert.Equal(t, "test-issuer", claims.Issuer)

	parsed, err := claims.OwnerUUID()
	require.NoError(t, err)
	assert.Equal(t, ownerID, parsed)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.GenerateToken(uuid.New(), -time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("invalid-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-of-32-characters", Issuer: "test-issuer"})
	token, err := other.GenerateToken(uuid.New(), time.Minute)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else"})
	token, err := other.GenerateToken(uuid.New(), time.Minute)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{OwnerID: uuid.NewString()}
	claims.Issuer = "test-issuer"
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).
		SignedString([]byte("test-secret-key-at-least-32-chars"))
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_OwnerClaim(t *testing.T) {
	sign := func(owner string) string {
		claims := &Claims{OwnerID: owner}
		claims.Issuer = "test-issuer"
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Minute))
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret-key-at-least-32-chars"))
		require.NoError(t, err)
		return token
	}
	svc := newTestJWTService()

	_, err := svc.ValidateToken(sign(""))
	assert.ErrorIs(t, err, ErrMissingOwnerID)

	_, err = svc.ValidateToken(sign("not-a-uuid"))
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
