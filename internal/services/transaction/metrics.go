package transaction

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

type MetricsCollector interface {
	RecordTransaction(operation string, amount decimal.Decimal)
	RecordError(operation, code string)
	RecordOperationDuration(operation string, d time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransaction(string, decimal.Decimal)     {}
func (NoopMetricsCollector) RecordError(string, string)                    {}
func (NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}

type PrometheusCollector struct {
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	errors       *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	factory := promauto.With(reg)
	return &PrometheusCollector{
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paywallet",
				Subsystem: "transfers",
				Name:      "committed_total",
				Help:      "Total committed money movements by operation.",
			},
			[]string{"operation"},
		),
		volume: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paywallet",
				Subsystem: "transfers",
				Name:      "volume_total",
				Help:      "Sum of committed amounts by operation.",
			},
			[]string{"operation"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paywallet",
				Subsystem: "transfers",
				Name:      "errors_total",
				Help:      "Total rejected or failed money movements by operation and error code.",
			},
			[]string{"operation", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "paywallet",
				Subsystem: "transfers",
				Name:      "duration_seconds",
				Help:      "Latency of money movement operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusCollector) RecordTransaction(operation string, amount decimal.Decimal) {
	m.transactions.WithLabelValues(operation).Inc()
	m.volume.WithLabelValues(operation).Add(amount.InexactFloat64())
}

func (m *PrometheusCollector) RecordError(operation, code string) {
	m.errors.WithLabelValues(operation, code).Inc()
}

func (m *PrometheusCollector) RecordOperationDuration(operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}
