package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeEligible        = "eligible"
	OutcomeIneligible      = "ineligible"
	OutcomeValidationError = "validation_error"
	OutcomeInferenceError  = "inference_error"
)

// Metrics provides observability for eligibility checks.
type Metrics struct {
	// Check outcomes by result kind
	Outcomes *prometheus.CounterVec

	// Latency of the single inference call per accepted request
	InferenceLatency prometheus.Histogram

	// Results that resolved after a newer submission on the same session
	StaleResults prometheus.Counter
}

// New registers the eligibility metrics on reg. A nil reg yields working but
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mantlecoop_eligibility_checks_total",
			Help: "Total eligibility checks by outcome",
		}, []string{"outcome"}),

		InferenceLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mantlecoop_eligibility_inference_duration_seconds",
			Help:    "Duration of the inference call for accepted eligibility requests",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 45},
		}),

		StaleResults: factory.NewCounter(prometheus.CounterOpts{
			Name: "mantlecoop_eligibility_stale_results_total",
			Help: "Eligibility results superseded by a newer submission on the same session",
		}),
	}
}

// IncrementOutcome records a check outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

// ObserveInferenceLatency records the duration of one inference call.
func (m *Metrics) ObserveInferenceLatency(d time.Duration) {
	if m != nil {
		m.InferenceLatency.Observe(d.Seconds())
	}
}

// IncrementStale records a superseded result.
func (m *Metrics) IncrementStale() {
	if m != nil {
		m.StaleResults.Inc()
	}
}
