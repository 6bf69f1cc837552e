package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// --- Inbound (server) metrics ---
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_errors_total",
			Help: "Total number of HTTP requests resulting in client or server errors.",
		},
		[]string{"method", "route", "code"},
	)

	// --- Outbound (model and search provider) metrics ---
	HTTPClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outbound HTTP requests.",
		},
		[]string{"method", "code"},
	)
	HTTPClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Latency of outbound HTTP requests.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "code"},
	)
	HTTPClientInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_client_in_flight_requests",
			Help: "Outbound HTTP requests currently waiting for a response.",
		},
	)

	// --- Analyzer and tool metrics ---
	AnalyzerOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screen_analyzer_outcomes_total",
			Help: "Screenshot analyses by outcome (parsed, raw_fallback, no_artifact).",
		},
		[]string{"outcome"},
	)
	AnalyzerResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screen_analyzer_resolutions_total",
			Help: "Resolved screenshot artifacts by resolution strategy.",
		},
		[]string{"strategy"},
	)
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocations_total",
			Help: "Tool invocations by agent, tool and status.",
		},
		[]string{"agent", "tool", "status"},
	)

	// --- Runtime metrics ---
	CPUCount = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "process_cpu_count",
			Help: "Number of CPU cores available.",
		},
		func() float64 { return float64(runtime.NumCPU()) },
	)
)

func MetricsRegister() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestErrorsTotal,
		HTTPClientRequestsTotal,
		HTTPClientRequestDuration,
		HTTPClientInFlight,
		AnalyzerOutcomesTotal,
		AnalyzerResolutionsTotal,
		ToolInvocationsTotal,
		CPUCount,
	)

	return reg
}
