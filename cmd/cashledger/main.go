package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/anatoliatours/cashledger/internal/adapters/database/pgsql"
	"github.com/anatoliatours/cashledger/internal/adapters/rates"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	"github.com/anatoliatours/cashledger/internal/core/services"
	"github.com/anatoliatours/cashledger/internal/handlers"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/anatoliatours/cashledger/pkg/config"
	"github.com/anatoliatours/cashledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Cashledger API
// @version 1.0
// @description Multi-currency cash position and settlement backend for the tour operator back office.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire repositories and services
	repos := &portsrepo.RepositoryProvider{
		AccountRepo:  pgsql.NewPgxAccountRepository(dbPool),
		PaymentRepo:  pgsql.NewPgxPaymentRepository(dbPool),
		ExchangeRepo: pgsql.NewPgxExchangeRepository(dbPool),
		TransferRepo: pgsql.NewPgxTransferRepository(dbPool),
		RateRepo:     pgsql.NewPgxRateRepository(dbPool),
	}
	rateSource := rates.NewHTTPSource(cfg.RateSourceURL)
	serviceContainer := services.NewServiceContainer(context.Background(), repos, rateSource)

	// Periodic rate refresh; a failed pull keeps the previous snapshot.
	if cfg.RateSourceURL != "" {
		refresh := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := serviceContainer.Rate.Refresh(ctx); err != nil {
				logger.Warn("Scheduled rate refresh failed", slog.String("error", err.Error()))
			}
		}
		refresh()

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.RateRefreshSchedule, refresh); err != nil {
			logger.Error("Invalid rate refresh schedule", slog.String("schedule", cfg.RateRefreshSchedule), slog.String("error", err.Error()))
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("Rate refresh scheduled", slog.String("schedule", cfg.RateRefreshSchedule))
	} else {
		logger.Warn("No rate source configured; rates must be set via the API")
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit spec", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies any pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
