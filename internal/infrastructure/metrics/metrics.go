package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus metrics.
type Metrics struct {
	// Movement metrics
	MovementsCreated  prometheus.Counter
	MovementsUpdated  prometheus.Counter
	MovementsRejected *prometheus.CounterVec
	MovementAmount    prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountBalance  *prometheus.GaugeVec

	// Report metrics
	ReportsGenerated prometheus.Counter
	ReportCacheHits  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		MovementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cuentas_movements_created_total",
			Help: "Total number of movements posted",
		}),
		MovementsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cuentas_movements_updated_total",
			Help: "Total number of movements edited or reassigned",
		}),
		MovementsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cuentas_movements_rejected_total",
				Help: "Total number of movements rejected by reason",
			},
			[]string{"reason"},
		),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cuentas_movement_amount",
			Help:    "Absolute movement amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cuentas_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cuentas_account_balance",
				Help: "Current account balance",
			},
			[]string{"account_id"},
		),

		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cuentas_reports_generated_total",
			Help: "Total number of statement reports generated",
		}),
		ReportCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cuentas_report_cache_hits_total",
			Help: "Total number of statement reports served from cache",
		}),
	}
}
