package earnings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot(status, total, paid, balance string, lines ...LineSnapshot) BillSnapshot {
	return BillSnapshot{
		BillID:        uuid.New(),
		Status:        status,
		TotalAmount:   d(total),
		PaidAmount:    d(paid),
		CreditBalance: d(balance),
		CreatedAt:     time.Now(),
		Lines:         lines,
	}
}

func lineOf(id uuid.UUID, name, qty, lineTotal, unitCost string) LineSnapshot {
	return LineSnapshot{
		ProductID:   id,
		ProductName: name,
		Quantity:    d(qty),
		LineTotal:   d(lineTotal),
		UnitCost:    d(unitCost),
	}
}

func TestSummarize_CashSale(t *testing.T) {
	productA := uuid.New()
	bills := []BillSnapshot{
		snapshot("PAID", "354", "354", "0", lineOf(productA, "A", "3", "300", "70")),
	}

	s := Summarize(bills)

	assert.True(t, s.RealizedRevenue.Equal(d("300")))
	assert.True(t, s.RealizedCost.Equal(d("210")))
	assert.True(t, s.RealizedProfit.Equal(d("90")))
	assert.True(t, s.ProfitMargin.Equal(d("30")))
	assert.True(t, s.PendingProfit.IsZero())
	assert.Equal(t, int64(1), s.TransactionCount)
	assert.True(t, s.AvgProfitPerSale.Equal(d("90")))
}

func TestSummarize_UnpaidCreditIsPending(t *testing.T) {
	bills := []BillSnapshot{
		snapshot("UNPAID", "236", "0", "236", lineOf(uuid.New(), "A", "2", "200", "70")),
	}

	s := Summarize(bills)

	assert.True(t, s.RealizedRevenue.IsZero())
	assert.True(t, s.RealizedProfit.IsZero())
	assert.True(t, s.ProfitMargin.IsZero())
	assert.True(t, s.PendingProfit.Equal(d("60")))
	assert.True(t, s.PendingAmount.Equal(d("236")))
	assert.Equal(t, int64(0), s.TransactionCount)
}

func TestSummarize_PartialSplitsWithoutDoubleCounting(t *testing.T) {
	bills := []BillSnapshot{
		snapshot("PARTIAL", "500", "200", "300", lineOf(uuid.New(), "A", "5", "500", "60")),
	}

	s := Summarize(bills)

	// profit 200 split 40% realized, 60% pending
	assert.True(t, s.RealizedRevenue.Equal(d("200")))
	assert.True(t, s.RealizedProfit.Equal(d("80")))
	assert.True(t, s.PendingRevenue.Equal(d("300")))
	assert.True(t, s.PendingProfit.Equal(d("120")))
	assert.True(t, s.RealizedProfit.Add(s.PendingProfit).Equal(d("200")))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.True(t, s.RealizedRevenue.IsZero())
	assert.True(t, s.ProfitMargin.IsZero())
	assert.True(t, s.AvgProfitPerSale.IsZero())
}

func TestMarginClass(t *testing.T) {
	assert.Equal(t, MarginHigh, MarginClass(d("30")))
	assert.Equal(t, MarginMedium, MarginClass(d("15")))
	assert.Equal(t, MarginMedium, MarginClass(d("29.99")))
	assert.Equal(t, MarginLow, MarginClass(d("14.99")))
	assert.Equal(t, MarginLow, MarginClass(d("-5")))
}

func TestByProductAndRank(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	bills := []BillSnapshot{
		snapshot("PAID", "400", "400", "0",
			lineOf(a, "A", "3", "300", "70"),
			lineOf(b, "B", "1", "100", "95")),
		snapshot("PAID", "250", "250", "0",
			lineOf(c, "C", "5", "250", "30"),
			lineOf(a, "A", "1", "100", "70")),
		snapshot("UNPAID", "1000", "0", "1000",
			lineOf(b, "B", "10", "1000", "95")),
	}

	products := ByProduct(bills)

	require.Len(t, products, 3)
	assert.Equal(t, a, products[0].ProductID)
	assert.True(t, products[0].Profit.Equal(d("120")))
	assert.True(t, products[0].QuantitySold.Equal(d("4")))
	assert.Equal(t, MarginHigh, products[0].MarginClass)
	assert.Equal(t, c, products[1].ProductID)
	assert.Equal(t, b, products[2].ProductID)
	assert.Equal(t, MarginLow, products[2].MarginClass)

	ranked := Rank(products, 2)
	require.Len(t, ranked.Top, 2)
	require.Len(t, ranked.Bottom, 2)
	assert.Equal(t, a, ranked.Top[0].ProductID)
	assert.Equal(t, b, ranked.Bottom[0].ProductID)
}
