// Package observability exposes process metrics for the scripting backend.
package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type moduleMetrics struct {
	registry *prometheus.Registry

	scriptExecutionsTotal   *prometheus.CounterVec
	scriptExecutionDuration *prometheus.HistogramVec

	packageReconfiguresTotal prometheus.Counter
	reconfigureFailuresTotal prometheus.Counter
	completionCatalogSize    prometheus.Gauge

	gatewayClientsActive prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			registry: prometheus.NewRegistry(),
			scriptExecutionsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "script_executions_total",
					Help: "Total script executions by mode and outcome.",
				},
				[]string{"mode", "outcome"},
			),
			scriptExecutionDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "script_execution_duration_seconds",
					Help:    "Duration of script executions in seconds.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"mode"},
			),
			packageReconfiguresTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "package_reconfigures_total",
					Help: "Successful capability package reconfigurations.",
				},
			),
			reconfigureFailuresTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "package_reconfigure_failures_total",
					Help: "Rejected capability package reconfigurations.",
				},
			),
			completionCatalogSize: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "completion_catalog_size",
					Help: "Entries in the current completion catalog.",
				},
			),
			gatewayClientsActive: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "gateway_clients_active",
					Help: "Connected gateway clients.",
				},
			),
		}

		m.registry.MustRegister(
			m.scriptExecutionsTotal,
			m.scriptExecutionDuration,
			m.packageReconfiguresTotal,
			m.reconfigureFailuresTotal,
			m.completionCatalogSize,
			m.gatewayClientsActive,
		)

		metricsInst = m
	})
	return metricsInst
}

// EnsureRegistered initializes the metric set exactly once. Safe to call from
// any component that records metrics.
func EnsureRegistered() {
	getMetrics()
}

// ObserveExecution records one script execution.
func ObserveExecution(mode, outcome string, duration time.Duration) {
	m := getMetrics()
	m.scriptExecutionsTotal.WithLabelValues(mode, outcome).Inc()
	m.scriptExecutionDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordReconfigure records one reconfigure attempt.
func RecordReconfigure(success bool) {
	m := getMetrics()
	if success {
		m.packageReconfiguresTotal.Inc()
	} else {
		m.reconfigureFailuresTotal.Inc()
	}
}

// SetCompletionCatalogSize updates the catalog size gauge.
func SetCompletionCatalogSize(n int) {
	getMetrics().completionCatalogSize.Set(float64(n))
}

// SetGatewayClients updates the connected client gauge.
func SetGatewayClients(n int) {
	getMetrics().gatewayClientsActive.Set(float64(n))
}

// Handler returns an HTTP handler serving the metric registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(getMetrics().registry, promhttp.HandlerOpts{})
}
