package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/sahelretail/compta/internal/adapter/http"
	"github.com/sahelretail/compta/internal/adapter/http/handler"
	"github.com/sahelretail/compta/internal/adapter/http/middleware"
	postgresRepo "github.com/sahelretail/compta/internal/adapter/repository/postgres"
	redisRepo "github.com/sahelretail/compta/internal/adapter/repository/redis"
	"github.com/sahelretail/compta/internal/infrastructure/config"
	"github.com/sahelretail/compta/internal/infrastructure/logger"
	"github.com/sahelretail/compta/internal/infrastructure/metrics"
	"github.com/sahelretail/compta/internal/infrastructure/postgres"
	redisInfra "github.com/sahelretail/compta/internal/infrastructure/redis"
	"github.com/sahelretail/compta/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Postgres
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional: without it the service runs with no report
	// cache and no request idempotency.
	var (
		idempotencyStore middleware.IdempotencyStore
		reportCache      usecase.Cache
	)

	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache and idempotency")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		reportCache = redisRepo.NewCache(redisClient)
	}

	appMetrics := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, journalRepo, entryRepo, idGen, retrier)
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, accountRepo)
	balanceUC := usecase.NewBalanceUseCase(balanceRepo, reportCache)
	catalogUC := usecase.NewCatalogUseCase(accountRepo, journalRepo)
	bootstrapUC := usecase.NewBootstrapUseCase(txManager, accountRepo, journalRepo)
	backfillUC := usecase.NewBackfillUseCase(entryRepo)

	if cfg.SeedDefaults {
		if err := bootstrapUC.InitializeDefaults(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed default accounts and journals")
		}
		log.Info().Msg("default journals and accounts seeded")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PostingHandler:   handler.NewPostingHandler(postingUC, appMetrics),
		ReportHandler:    handler.NewReportHandler(ledgerUC, balanceUC, appMetrics),
		CatalogHandler:   handler.NewCatalogHandler(catalogUC),
		AdminHandler:     handler.NewAdminHandler(bootstrapUC, backfillUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           log,
		Metrics:          appMetrics,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
