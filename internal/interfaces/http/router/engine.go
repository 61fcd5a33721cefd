package router

import (
	"github.com/bizpulse/backend/internal/infrastructure/logger"
	"github.com/bizpulse/backend/internal/interfaces/http/handler"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Config selects the middleware chain NewEngine installs
type Config struct {
	ServiceName    string
	TracingEnabled bool
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	TrustedProxies []string
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *middleware.RateLimiter
	Owner       middleware.OwnerScopeConfig
	// Meter is optional; nil disables HTTP metrics
	Meter  metric.Meter
	Logger *zap.Logger
}

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	Health   *handler.HealthHandler
	Bill     *handler.BillHandler
	Credit   *handler.CreditHandler
	Earnings *handler.EarningsHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
}

// NewEngine builds the gin engine: global middleware, public health routes
// and the owner-scoped /api/v1 routes.
func NewEngine(cfg Config, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: cfg.TracingEnabled}),
	)
	if cfg.Meter != nil {
		engine.Use(middleware.HTTPMetrics(cfg.Meter, log))
	}
	engine.Use(
		middleware.Secure(cfg.Security),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.MaxBodySize),
	)

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
		engine.GET("/api/v1/health", h.Health.Health)
	}

	apiMiddleware := []gin.HandlerFunc{
		middleware.OwnerScope(cfg.Owner),
		middleware.SpanEnricher(),
	}
	if cfg.RateLimiter != nil {
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(cfg.RateLimiter))
	}

	NewRouter(engine, WithAPIVersion("v1"), WithMiddleware(apiMiddleware...)).
		Register(domainGroups(h)...).
		Setup()

	return engine, nil
}

func domainGroups(h Handlers) []RouteRegistrar {
	var groups []RouteRegistrar

	if h.Bill != nil {
		groups = append(groups, NewDomainGroup("billing", "/bills").
			POST("", h.Bill.Create).
			GET("/:id", h.Bill.Get).
			DELETE("/:id", h.Bill.Delete))
	}
	if h.Credit != nil {
		groups = append(groups, NewDomainGroup("credit", "/credit").
			POST("/payments", h.Credit.RecordPayment).
			GET("/bills", h.Credit.ListOutstanding).
			GET("/bills/:id/transactions", h.Credit.TransactionHistory).
			GET("/receivable", h.Credit.Receivable).
			GET("/customers/:id/statement", h.Credit.CustomerStatement).
			GET("/today", h.Credit.TodayCollections))
	}
	if h.Earnings != nil {
		groups = append(groups, NewDomainGroup("earnings", "/earnings").
			GET("/summary", h.Earnings.Summary).
			GET("/products", h.Earnings.Products).
			GET("/top-products", h.Earnings.TopProducts))
	}
	if h.Product != nil {
		groups = append(groups, NewDomainGroup("inventory", "/products").
			GET("", h.Product.List).
			POST("", h.Product.Create).
			GET("/:id", h.Product.Get).
			POST("/:id/restock", h.Product.Restock))
	}
	if h.Customer != nil {
		groups = append(groups, NewDomainGroup("partner", "/customers").
			GET("", h.Customer.List).
			POST("", h.Customer.Create).
			GET("/:id", h.Customer.Get))
	}
	return groups
}
