// Package earnings holds the read models and calculator that split revenue,
// cost and profit into realized (collected) and pending (still owed) buckets.
package earnings

import (
	"context"
	"sort"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Margin classes for product earnings
const (
	MarginHigh   = "high"
	MarginMedium = "medium"
	MarginLow    = "low"
)

// LineSnapshot is one sold line as captured at sale time
type LineSnapshot struct {
	ProductID   uuid.UUID
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	LineTotal   decimal.Decimal
	UnitCost    decimal.Decimal
}

// BillSnapshot is the committed state of a bill needed for earnings
type BillSnapshot struct {
	BillID        uuid.UUID
	Status        string
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	Lines         []LineSnapshot
}

// paidFraction is the collected share of the bill, between 0 and 1
func (b BillSnapshot) paidFraction() decimal.Decimal {
	if b.TotalAmount.IsZero() {
		if b.CreditBalance.IsZero() {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	}
	return b.PaidAmount.Div(b.TotalAmount)
}

// pendingFraction is the uncollected share of the bill
func (b BillSnapshot) pendingFraction() decimal.Decimal {
	if b.TotalAmount.IsZero() || !b.CreditBalance.IsPositive() {
		return decimal.Zero
	}
	return b.CreditBalance.Div(b.TotalAmount)
}

// Summary is the earnings read model for a period
type Summary struct {
	RealizedRevenue  decimal.Decimal `json:"realized_revenue"`
	RealizedCost     decimal.Decimal `json:"realized_cost"`
	RealizedProfit   decimal.Decimal `json:"realized_profit"`
	ProfitMargin     decimal.Decimal `json:"profit_margin"`
	PendingRevenue   decimal.Decimal `json:"pending_revenue"`
	PendingProfit    decimal.Decimal `json:"pending_profit"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
	TransactionCount int64           `json:"transaction_count"`
	AvgProfitPerSale decimal.Decimal `json:"avg_profit_per_sale"`
}

// ProductEarning is the realized performance of one product
type ProductEarning struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	MarginClass  string          `json:"margin_class"`
}

// TopProducts is the best and worst realized performers
type TopProducts struct {
	Top    []ProductEarning `json:"top"`
	Bottom []ProductEarning `json:"bottom"`
}

// Reader loads bill snapshots for the calculator
type Reader interface {
	// LoadBills returns the owner's bills created within the range, with their lines
	LoadBills(ctx context.Context, ownerID uuid.UUID, r shared.DateRange) ([]BillSnapshot, error)
}

// Margin returns profit/revenue*100, or zero when revenue is zero
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}

// MarginClass buckets a margin percentage
func MarginClass(margin decimal.Decimal) string {
	switch {
	case margin.GreaterThanOrEqual(decimal.NewFromInt(30)):
		return MarginHigh
	case margin.GreaterThanOrEqual(decimal.NewFromInt(15)):
		return MarginMedium
	default:
		return MarginLow
	}
}

// Summarize computes realized and pending earnings. A bill contributes its
// collected fraction to the realized bucket and its outstanding fraction to
// the pending bucket, so no bill is counted twice.
func Summarize(bills []BillSnapshot) Summary {
	revenue, cost := decimal.Zero, decimal.Zero
	pendingRevenue, pendingProfit, pendingAmount := decimal.Zero, decimal.Zero, decimal.Zero
	var count int64

	for _, b := range bills {
		paid := b.paidFraction()
		pending := b.pendingFraction()
		if paid.IsPositive() {
			count++
		}
		pendingAmount = pendingAmount.Add(decimal.Max(b.CreditBalance, decimal.Zero))

		for _, l := range b.Lines {
			lineCost := l.Quantity.Mul(l.UnitCost)
			revenue = revenue.Add(l.LineTotal.Mul(paid))
			cost = cost.Add(lineCost.Mul(paid))
			pendingRevenue = pendingRevenue.Add(l.LineTotal.Mul(pending))
			pendingProfit = pendingProfit.Add(l.LineTotal.Sub(lineCost).Mul(pending))
		}
	}

	revenue = revenue.Round(2)
	cost = cost.Round(2)
	profit := revenue.Sub(cost)
	s := Summary{
		RealizedRevenue:  revenue,
		RealizedCost:     cost,
		RealizedProfit:   profit,
		ProfitMargin:     Margin(profit, revenue),
		PendingRevenue:   pendingRevenue.Round(2),
		PendingProfit:    pendingProfit.Round(2),
		PendingAmount:    pendingAmount.Round(2),
		TransactionCount: count,
		AvgProfitPerSale: decimal.Zero,
	}
	if count > 0 {
		s.AvgProfitPerSale = profit.Div(decimal.NewFromInt(count)).Round(2)
	}
	return s
}

// ByProduct computes realized earnings per product, ordered by profit descending
func ByProduct(bills []BillSnapshot) []ProductEarning {
	index := make(map[uuid.UUID]*ProductEarning)
	var order []uuid.UUID

	for _, b := range bills {
		paid := b.paidFraction()
		if !paid.IsPositive() {
			continue
		}
		for _, l := range b.Lines {
			pe, ok := index[l.ProductID]
			if !ok {
				pe = &ProductEarning{
					ProductID:    l.ProductID,
					ProductName:  l.ProductName,
					Category:     l.Category,
					QuantitySold: decimal.Zero,
					Revenue:      decimal.Zero,
					Cost:         decimal.Zero,
				}
				index[l.ProductID] = pe
				order = append(order, l.ProductID)
			}
			pe.QuantitySold = pe.QuantitySold.Add(l.Quantity)
			pe.Revenue = pe.Revenue.Add(l.LineTotal.Mul(paid))
			pe.Cost = pe.Cost.Add(l.Quantity.Mul(l.UnitCost).Mul(paid))
		}
	}

	result := make([]ProductEarning, 0, len(order))
	for _, id := range order {
		pe := index[id]
		pe.Revenue = pe.Revenue.Round(2)
		pe.Cost = pe.Cost.Round(2)
		pe.Profit = pe.Revenue.Sub(pe.Cost)
		pe.ProfitMargin = Margin(pe.Profit, pe.Revenue)
		pe.MarginClass = MarginClass(pe.ProfitMargin)
		result = append(result, *pe)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Profit.GreaterThan(result[j].Profit)
	})
	return result
}

// Rank returns the n most and n least profitable products
func Rank(products []ProductEarning, n int) TopProducts {
	if n <= 0 {
		n = 5
	}
	top := products
	if len(top) > n {
		top = top[:n]
	}

	bottom := make([]ProductEarning, 0, n)
	for i := len(products) - 1; i >= 0 && len(bottom) < n; i-- {
		bottom = append(bottom, products[i])
	}
	return TopProducts{Top: top, Bottom: bottom}
}
