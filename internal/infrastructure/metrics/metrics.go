package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Generation pipeline
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_generations_total",
			Help: "Generation pipeline runs by target kind and result",
		},
		[]string{"kind", "result"}, // result: ok|failed
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devassist_generation_duration_seconds",
			Help:    "Histogram of full pipeline durations in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1s..512s
		},
		[]string{"kind"},
	)

	// Model endpoint
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_llm_requests_total",
			Help: "Number of model invocations by model id",
		},
		[]string{"model"},
	)
	LLMDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devassist_llm_duration_seconds",
			Help:    "Duration of individual model invocations",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// Container builds
	Builds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_builds_total",
			Help: "Container build invocations by result",
		},
		[]string{"result"}, // result: success|failure|error
	)
	BuildDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devassist_build_duration_seconds",
			Help:    "Duration of container build invocations",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// Validation
	ValidationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_validation_runs_total",
			Help: "Static validation runs by validator and result",
		},
		[]string{"validator", "result"}, // validator: terraform|yaml, result: ok|failed
	)

	// Stores
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_store_ops_total",
			Help: "Job and artifact store operations",
		},
		[]string{"op"}, // op: get|put|delete|list
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		Generations,
		GenerationDurationSeconds,
		LLMRequests,
		LLMDurationSeconds,
		Builds,
		BuildDurationSeconds,
		ValidationRuns,
		StoreOps,
		Errors,
	)
}

func IncGeneration(kind, result string) {
	Generations.WithLabelValues(kind, result).Inc()
}

func ObserveGenerationDuration(kind string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(kind).Observe(d.Seconds())
}

func IncLLMRequest(model string) {
	LLMRequests.WithLabelValues(model).Inc()
}

func ObserveLLMDuration(d time.Duration) {
	LLMDurationSeconds.Observe(d.Seconds())
}

func IncBuild(result string) {
	Builds.WithLabelValues(result).Inc()
}

func ObserveBuildDuration(d time.Duration) {
	BuildDurationSeconds.Observe(d.Seconds())
}

func IncValidationRun(validator, result string) {
	ValidationRuns.WithLabelValues(validator, result).Inc()
}

func IncStoreOp(op string) {
	StoreOps.WithLabelValues(op).Inc()
}

func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
