package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	PostingsCreated *prometheus.CounterVec
	PostingErrors   *prometheus.CounterVec
	PostingDuration prometheus.Histogram
	PostingAmount   prometheus.Histogram
	EntriesDeleted  prometheus.Counter

	// Catalog metrics
	AccountsCreated prometheus.Counter
	JournalsCreated prometheus.Counter

	// Report metrics
	BalanceChecks     prometheus.Counter
	BalanceUnbalanced prometheus.Counter
	BalanceEcart      prometheus.Gauge
	ReportCacheHits   *prometheus.CounterVec
	ReportCacheMisses *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Posting metrics
		PostingsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_postings_created_total",
				Help: "Total number of balanced entry sets posted, by kind",
			},
			[]string{"kind"},
		),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "compta_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "compta_posting_amount",
			Help:    "Posted amounts",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compta_entries_deleted_total",
			Help: "Total number of entries deleted when source records were cancelled",
		}),

		// Catalog metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compta_accounts_created_total",
			Help: "Total number of accounts created in the catalog",
		}),
		JournalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compta_journals_created_total",
			Help: "Total number of journals created in the registry",
		}),

		// Report metrics
		BalanceChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compta_balance_checks_total",
			Help: "Total number of trial balance computations",
		}),
		BalanceUnbalanced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "compta_balance_unbalanced_total",
			Help: "Total number of trial balances with a nonzero ecart",
		}),
		BalanceEcart: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "compta_balance_ecart",
			Help: "Ecart of the most recent trial balance",
		}),
		ReportCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_report_cache_hits_total",
				Help: "Total report cache hits",
			},
			[]string{"report"},
		),
		ReportCacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_report_cache_misses_total",
				Help: "Total report cache misses",
			},
			[]string{"report"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "compta_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
