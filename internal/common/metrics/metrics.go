// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComponentRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "component_runs_completed_total",
			Help: "Total number of component executions completed",
		},
		[]string{"component"},
	)

	ComponentRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "component_runs_failed_total",
			Help: "Total number of component executions that returned an error result",
		},
		[]string{"component", "error_code"},
	)

	ComponentRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "component_run_duration_seconds",
			Help: "Duration of component execution in seconds",
		},
		[]string{"component"},
	)

	ComponentRunsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "component_runs_active",
			Help: "Number of in-flight executions per component",
		},
		[]string{"component"},
	)
)
