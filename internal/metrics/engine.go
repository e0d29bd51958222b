package metrics

import "github.com/prometheus/client_golang/prometheus"

// Answer engine Prometheus metrics.
var (
	IntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pensum",
			Name:      "intents_total",
			Help:      "Classified questions by intent",
		},
		[]string{"intent"},
	)

	AnswerPathTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pensum",
			Name:      "answer_path_total",
			Help:      "Answers by intent and producing path",
		},
		[]string{"intent", "path"}, // "deterministic" / "generative"
	)

	RetrievalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pensum",
			Name:      "retrieval_total",
			Help:      "Document retrievals by mode",
		},
		[]string{"mode"}, // "filtered" / "similarity"
	)

	RetrievalFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pensum",
			Name:      "retrieval_fallback_total",
			Help:      "Filtered fetches that degraded to similarity search",
		},
		[]string{"reason"}, // "empty" / "error"
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pensum",
			Name:      "generation_requests_total",
			Help:      "Total number of generative completion requests",
		},
		[]string{"mode", "status"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pensum",
			Name:      "generation_duration_seconds",
			Help:      "Generative completion duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)
)

// Answer paths.
const (
	PathDeterministic = "deterministic"
	PathGenerative    = "generative"
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers the answer engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(IntentsTotal)
	prometheus.MustRegister(AnswerPathTotal)
	prometheus.MustRegister(RetrievalTotal)
	prometheus.MustRegister(RetrievalFallbackTotal)
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationDuration)
	engineMetricsRegistered = true
}
