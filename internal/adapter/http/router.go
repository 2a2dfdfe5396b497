package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sahelretail/compta/internal/adapter/http/handler"
	"github.com/sahelretail/compta/internal/adapter/http/middleware"
	"github.com/sahelretail/compta/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PostingHandler *handler.PostingHandler
	ReportHandler  *handler.ReportHandler
	CatalogHandler *handler.CatalogHandler
	AdminHandler   *handler.AdminHandler
	HealthHandler  *handler.HealthHandler

	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	// Optional; nil disables request idempotency.
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Postings
		r.Route("/postings", func(r chi.Router) {
			r.Post("/sales", cfg.PostingHandler.PostSale)
			r.Post("/purchases", cfg.PostingHandler.PostPurchase)
			r.Post("/expenses", cfg.PostingHandler.PostExpense)
			r.Post("/charges", cfg.PostingHandler.PostCharge)
			r.Post("/cash-movements", cfg.PostingHandler.PostCashMovement)
			r.Post("/bank-operations", cfg.PostingHandler.PostBankOperation)
			r.Post("/transfers", cfg.PostingHandler.PostTransfer)
		})

		r.Delete("/entries", cfg.PostingHandler.DeleteByReference)

		// Catalog
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListAccounts)
			r.Get("/{number}", cfg.CatalogHandler.GetAccount)
		})
		r.Route("/journals", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListJournals)
			r.Get("/{code}", cfg.CatalogHandler.GetJournal)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/ledger", cfg.ReportHandler.Ledger)
			r.Get("/balance", cfg.ReportHandler.Balance)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Post("/defaults", cfg.AdminHandler.InitializeDefaults)
			r.Post("/backfill/missing", cfg.AdminHandler.MissingReferences)
		})
	})

	return r
}
