package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/auctionly/auction-processor/internal/domain/usecase/lifecycle"
	"github.com/auctionly/auction-processor/internal/domain/usecase/settlement"
	"github.com/auctionly/auction-processor/internal/domain/usecase/throttle"

	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/handler"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/routes"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/database"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/database/migration"
	identityAdapter "github.com/auctionly/auction-processor/internal/infrastructure/adapter/identity"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/logger"
	paymentAdapter "github.com/auctionly/auction-processor/internal/infrastructure/adapter/payment"
	redisAdapter "github.com/auctionly/auction-processor/internal/infrastructure/adapter/redis"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/repository"
	timeProvider "github.com/auctionly/auction-processor/internal/infrastructure/adapter/time"
	"github.com/auctionly/auction-processor/internal/infrastructure/config"
	"github.com/auctionly/auction-processor/internal/infrastructure/observability"
	"github.com/auctionly/auction-processor/internal/infrastructure/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Database
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Identity: optional Redis-backed token revocation
	var revocation identityAdapter.RevocationStore
	if cfg.Identity.RedisAddr != "" {
		redisClient, err := redisAdapter.NewClient(cfg.Identity.RedisAddr, cfg.Identity.RedisPassword, cfg.Identity.RedisDB)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", map[string]any{
				"addr":  cfg.Identity.RedisAddr,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer func() { _ = redisClient.Close() }()
		revocation = redisClient
	}
	verifier := identityAdapter.NewJWTVerifier(cfg.Identity.JWTSecret, revocation)

	// Repositories and unit of work
	auctionRepo := repository.NewAuctionRepository(conn.DB, appLogger)
	transactionRepo := repository.NewTransactionRepository(conn.DB, appLogger)
	accountRepo := repository.NewConnectAccountRepository(conn.DB, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Payment provider
	provider := paymentAdapter.NewClient(
		cfg.Payment.BaseURL,
		cfg.Payment.SecretKey,
		cfg.Payment.RequestTimeout,
		appLogger,
	)

	// Use cases
	lifecycleService := lifecycle.NewService(uow, verifier, tp, appLogger).
		WithBatchSize(cfg.Sweep.BatchSize)

	settlementService := settlement.NewService(
		auctionRepo,
		transactionRepo,
		accountRepo,
		provider,
		verifier,
		tp,
		appLogger,
		settlement.Config{
			ProviderName:         cfg.Payment.Provider,
			FeePercent:           cfg.Payment.FeePercent,
			SuccessURL:           cfg.Payment.SuccessURL,
			CancelURL:            cfg.Payment.CancelURL,
			OnboardingRefreshURL: cfg.Payment.OnboardingRefreshURL,
			OnboardingReturnURL:  cfg.Payment.OnboardingReturnURL,
			AccountCountry:       cfg.Payment.AccountCountry,
		},
	)

	// Throttling
	limiter := throttle.NewSlidingWindowLimiter(tp)
	bidPolicy := throttle.NewBidPolicy(limiter)
	bidPolicy.PerAuctionMax = cfg.RateLimit.BidPerAuctionMax
	bidPolicy.PerAuctionWindow = cfg.RateLimit.BidPerAuctionWindow
	bidPolicy.GlobalMax = cfg.RateLimit.BidGlobalMax
	bidPolicy.GlobalWindow = cfg.RateLimit.BidGlobalWindow
	contactPolicy := throttle.NewContactPolicy(limiter)
	contactPolicy.Max = cfg.RateLimit.ContactMax
	contactPolicy.Window = cfg.RateLimit.ContactWindow

	stopJanitor := limiter.StartJanitor(cfg.RateLimit.JanitorInterval, cfg.RateLimit.Retention)
	defer stopJanitor()

	// Metrics
	observability.Register()

	// Background sweep
	var sweeper *worker.Sweeper
	if cfg.Sweep.Enabled {
		sweeper = worker.NewSweeper(lifecycleService, appLogger, cfg.Sweep.Interval)
		sweeper.Start()
	}

	// HTTP layer
	lifecycleHandler := handler.NewLifecycleHandler(lifecycleService, appLogger)
	settlementHandler := handler.NewSettlementHandler(settlementService, appLogger)
	connectHandler := handler.NewConnectHandler(settlementService, appLogger)
	throttleHandler := handler.NewThrottleHandler(verifier, bidPolicy, contactPolicy, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, lifecycleHandler, settlementHandler, connectHandler, throttleHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if sweeper != nil {
		sweeper.Stop()
	}

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or AP_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or AP_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missing = append(missing, "database.password (or AP_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or AP_DB_NAME environment variable)")
	}

	if cfg.Identity.JWTSecret == "" {
		missing = append(missing, "identity.jwtSecret (or AP_JWT_SECRET environment variable)")
	}

	if cfg.Payment.SecretKey == "" {
		missing = append(missing, "payment.secretKey (or AP_PAYMENT_SECRET_KEY environment variable)")
	}
	if cfg.Payment.SuccessURL == "" {
		missing = append(missing, "payment.successURL")
	}
	if cfg.Payment.CancelURL == "" {
		missing = append(missing, "payment.cancelURL")
	}
	if cfg.Payment.OnboardingRefreshURL == "" {
		missing = append(missing, "payment.onboardingRefreshURL")
	}
	if cfg.Payment.OnboardingReturnURL == "" {
		missing = append(missing, "payment.onboardingReturnURL")
	}

	if cfg.Environment == "" {
		missing = append(missing, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	return nil
}
