package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appbilling "github.com/bizpulse/backend/internal/application/billing"
	appearnings "github.com/bizpulse/backend/internal/application/earnings"
	appinventory "github.com/bizpulse/backend/internal/application/inventory"
	apppartner "github.com/bizpulse/backend/internal/application/partner"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/auth"
	"github.com/bizpulse/backend/internal/infrastructure/cache"
	"github.com/bizpulse/backend/internal/infrastructure/config"
	"github.com/bizpulse/backend/internal/infrastructure/event"
	"github.com/bizpulse/backend/internal/infrastructure/logger"
	"github.com/bizpulse/backend/internal/infrastructure/notify"
	"github.com/bizpulse/backend/internal/infrastructure/persistence"
	"github.com/bizpulse/backend/internal/infrastructure/telemetry"
	"github.com/bizpulse/backend/internal/interfaces/http/handler"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/bizpulse/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BizPulse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()
	meter := mp.Meter("bizpulse")

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	// from here on every entry also goes to the collector
	log = telemetry.BridgeLogger(log, telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: lp,
		Level:          logger.ParseLevel(cfg.Log.Level),
	})

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingBasicAuthPassword,
		MutexProfiling:    cfg.Telemetry.ProfilingMutex,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && cfg.Telemetry.ProfilingSpanProfiles {
		tp.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("dialect", db.Dialect()))

	// SQLite deployments have no migration runner; the schema comes from the models
	if cfg.Database.IsSQLite() {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	dbSystem := "postgresql"
	if cfg.Database.IsSQLite() {
		dbSystem = "sqlite"
	}
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if mp.IsEnabled() {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal("Failed to access sql.DB", zap.Error(err))
		}
		reg, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
		if err != nil {
			log.Fatal("Failed to register database pool metrics", zap.Error(err))
		}
		defer func() { _ = reg.Unregister() }()
	}

	// Redis is optional: without it idempotency and stock alerts stay in-process
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	idempotencyStore := cache.NewIdempotencyStore(redisClient, log)
	defer func() { _ = idempotencyStore.Close() }()

	// Repositories and transaction scopes
	productRepo := persistence.NewGormProductRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRecordRepository(db.DB)
	creditRepo := persistence.NewGormCreditTransactionRepository(db.DB)
	billScope := persistence.NewGormTransactionScope(db.DB, cfg.Billing.LockTimeout)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB, cfg.Billing.LockTimeout)

	// Application services
	billService := appbilling.NewBillService(billScope, billRepo, paymentRepo, customerRepo,
		appbilling.BillServiceConfig{
			NumberPrefix:       cfg.Billing.NumberPrefix,
			WalkInCustomerName: cfg.Billing.WalkInCustomerName,
		}, log)
	settlementService := appbilling.NewSettlementService(billScope, billRepo, creditRepo, customerRepo, log)
	settlementService.SetIdempotencyStore(idempotencyStore, cfg.Billing.IdempotencyTTL)
	stockService := appinventory.NewStockService(inventoryScope, productRepo, log)
	customerService := apppartner.NewCustomerService(customerRepo)
	earningsService := appearnings.NewEarningsService(persistence.NewGormEarningsReader(db.DB), log)

	if mp.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
		if err != nil {
			log.Fatal("Failed to create business metrics", zap.Error(err))
		}
		billService.SetMetrics(businessMetrics)
		settlementService.SetMetrics(businessMetrics)
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	stockAlerts := appinventory.NewStockBelowThresholdHandler(log)
	if redisClient != nil {
		stockAlerts.WithNotifier(notify.NewRedisStockAlertNotifier(redisClient, cfg.Billing.StockAlertChannel, log))
	}
	event.Subscriptions(eventBus, log, idempotencyStore, stockAlerts)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	var publisher shared.EventPublisher = eventBus
	billService.SetEventPublisher(publisher)
	settlementService.SetEventPublisher(publisher)
	stockService.SetEventPublisher(publisher)

	// HTTP
	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	routerCfg := router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		CORS:           cors,
		Security:       middleware.SecurityConfig{HSTSEnabled: cfg.App.Env == "production", HSTSMaxAge: 31536000},
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RateLimiter:    limiter,
		Owner: middleware.OwnerScopeConfig{
			JWTService: jwtService,
			// header-based owner selection is for local development only
			AllowHeader: !jwtService.Enabled() || cfg.App.Env == "development",
			Logger:      log,
		},
		Logger: log,
	}
	if mp.IsEnabled() {
		routerCfg.Meter = meter
	}

	engine, err := router.NewEngine(routerCfg, router.Handlers{
		Health:   handler.NewHealthHandler(db, version),
		Bill:     handler.NewBillHandler(billService),
		Credit:   handler.NewCreditHandler(settlementService),
		Earnings: handler.NewEarningsHandler(earningsService),
		Product:  handler.NewProductHandler(stockService),
		Customer: handler.NewCustomerHandler(customerService),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
