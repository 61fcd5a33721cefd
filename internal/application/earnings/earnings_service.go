package earnings

import (
	"context"
	"strings"
	"time"

	"github.com/bizpulse/backend/internal/domain/earnings"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Date filter presets accepted by the earnings queries
const (
	DateFilterToday     = "today"
	DateFilterYesterday = "yesterday"
	DateFilterWeek      = "week"
	DateFilterMonth     = "month"
	DateFilterAll       = "all"
)

// DefaultTopProductsLimit is used when the caller does not pass a limit
const DefaultTopProductsLimit = 5

// Query selects the bills an earnings report covers.
// From/To take precedence over DateFilter.
type Query struct {
	DateFilter string
	From       *time.Time
	To         *time.Time
}

// ProductEarningsResponse wraps the per-product earnings list
type ProductEarningsResponse struct {
	Products []earnings.ProductEarning `json:"products"`
	Count    int                       `json:"count"`
}

// EarningsService computes realized and pending earnings for an owner
type EarningsService struct {
	reader earnings.Reader
	logger *zap.Logger
	now    func() time.Time
}

// NewEarningsService creates a new EarningsService
func NewEarningsService(reader earnings.Reader, logger *zap.Logger) *EarningsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EarningsService{
		reader: reader,
		logger: logger,
		now:    time.Now,
	}
}

// Summary returns the realized/pending earnings summary
func (s *EarningsService) Summary(ctx context.Context, ownerID uuid.UUID, q Query) (*earnings.Summary, error) {
	bills, err := s.load(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}
	summary := earnings.Summarize(bills)
	return &summary, nil
}

// ProductEarnings returns realized earnings grouped by product, most profitable first
func (s *EarningsService) ProductEarnings(ctx context.Context, ownerID uuid.UUID, q Query) (*ProductEarningsResponse, error) {
	bills, err := s.load(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}
	products := earnings.ByProduct(bills)
	return &ProductEarningsResponse{Products: products, Count: len(products)}, nil
}

// TopProducts returns the limit most and least profitable products
func (s *EarningsService) TopProducts(ctx context.Context, ownerID uuid.UUID, q Query, limit int) (*earnings.TopProducts, error) {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}
	bills, err := s.load(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}
	top := earnings.Rank(earnings.ByProduct(bills), limit)
	return &top, nil
}

func (s *EarningsService) load(ctx context.Context, ownerID uuid.UUID, q Query) ([]earnings.BillSnapshot, error) {
	r, err := ResolveRange(q, s.now())
	if err != nil {
		return nil, err
	}
	bills, err := s.reader.LoadBills(ctx, ownerID, r)
	if err != nil {
		s.logger.Error("failed to load bills for earnings",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, shared.NewPersistenceError("load bills", err)
	}
	return bills, nil
}

// ResolveRange turns a query into a creation-time range relative to now.
// An explicit To is inclusive of that whole day.
func ResolveRange(q Query, now time.Time) (shared.DateRange, error) {
	if q.From != nil || q.To != nil {
		var r shared.DateRange
		if q.From != nil {
			r.From = startOfDay(*q.From)
		}
		if q.To != nil {
			r.To = startOfDay(*q.To).AddDate(0, 0, 1)
		}
		if !r.From.IsZero() && !r.To.IsZero() && !r.From.Before(r.To) {
			return r, shared.NewValidationError("to", "End date must not be before start date")
		}
		return r, nil
	}

	today := startOfDay(now)
	switch strings.ToLower(strings.TrimSpace(q.DateFilter)) {
	case "", DateFilterAll:
		return shared.DateRange{}, nil
	case DateFilterToday:
		return shared.DateRange{From: today, To: today.AddDate(0, 0, 1)}, nil
	case DateFilterYesterday:
		return shared.DateRange{From: today.AddDate(0, 0, -1), To: today}, nil
	case DateFilterWeek:
		return shared.DateRange{From: today.AddDate(0, 0, -7), To: today.AddDate(0, 0, 1)}, nil
	case DateFilterMonth:
		return shared.DateRange{From: today.AddDate(0, 0, -30), To: today.AddDate(0, 0, 1)}, nil
	default:
		return shared.DateRange{}, shared.NewValidationError("date_filter", "Date filter must be one of today, yesterday, week, month, all")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
