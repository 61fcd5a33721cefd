package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		weights []string
		amount  string
		want    []string
	}{
		{
			name:    "single line takes everything",
			weights: []string{"300"},
			amount:  "54",
			want:    []string{"54"},
		},
		{
			name:    "even thirds push residual to last line",
			weights: []string{"100", "100", "100"},
			amount:  "10",
			want:    []string{"3.33", "3.33", "3.34"},
		},
		{
			name:    "proportional split",
			weights: []string{"200", "100"},
			amount:  "30",
			want:    []string{"20", "10"},
		},
		{
			name:    "zero weights allocate nothing",
			weights: []string{"0", "0"},
			amount:  "18",
			want:    []string{"0", "0"},
		},
		{
			name:    "zero amount",
			weights: []string{"50", "70"},
			amount:  "0",
			want:    []string{"0", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := make([]decimal.Decimal, len(tt.weights))
			for i, w := range tt.weights {
				weights[i] = dec(w)
			}

			got := Allocate(weights, dec(tt.amount))

			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.True(t, dec(w).Equal(got[i]), "share %d: want %s got %s", i, w, got[i])
			}
		})
	}
}

func TestAllocate_SumsExactly(t *testing.T) {
	weights := []decimal.Decimal{dec("19.99"), dec("7.01"), dec("0.37"), dec("113.5"), dec("42")}
	for _, amount := range []string{"0.01", "17.23", "99.99", "1000.07"} {
		shares := Allocate(weights, dec(amount))
		assert.True(t, sum(shares).Equal(dec(amount)), "amount %s summed to %s", amount, sum(shares))
	}
}

func TestAllocate_Empty(t *testing.T) {
	assert.Empty(t, Allocate(nil, dec("10")))
}
