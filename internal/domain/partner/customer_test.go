package partner

import (
	"errors"
	"testing"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates customer successfully", func(t *testing.T) {
		c, err := NewCustomer(ownerID, " Ravi Stores ", "9876543210", "ravi@example.com")

		require.NoError(t, err)
		assert.Equal(t, "Ravi Stores", c.Name)
		assert.Equal(t, ownerID, c.OwnerID)
		assert.False(t, c.HasCreditLimit())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer(ownerID, "", "", "")

		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("fails with bad email", func(t *testing.T) {
		_, err := NewCustomer(ownerID, "Ravi", "", "not-an-email")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestCustomer_SetCreditLimit(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Ravi", "", "")
	require.NoError(t, err)

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(5000)))
	assert.True(t, c.HasCreditLimit())
	assert.Equal(t, 2, c.Version)

	assert.Error(t, c.SetCreditLimit(decimal.NewFromInt(-1)))
}
