package billing

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places amounts are rounded to
const MoneyPlaces = 2

// Allocate splits amount across lines in proportion to their weights.
// Every share except the last is rounded to MoneyPlaces; the last share
// absorbs the residual so the shares always sum to amount exactly.
// When the weights sum to zero every share is zero.
func Allocate(weights []decimal.Decimal, amount decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if len(weights) == 0 {
		return shares
	}

	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(w)
	}
	if total.IsZero() || amount.IsZero() {
		return shares
	}

	allocated := decimal.Zero
	last := len(weights) - 1
	for i := 0; i < last; i++ {
		share := amount.Mul(weights[i]).Div(total).Round(MoneyPlaces)
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[last] = amount.Sub(allocated)
	return shares
}
