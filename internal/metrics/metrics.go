// Package metrics exposes Prometheus counters for evaluations, degraded
// analyses and narrative outcomes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Narrative outcomes.
const (
	NarrativeProvider = "provider"
	NarrativeTimeout  = "timeout"
	NarrativeError    = "error"
	NarrativeDisabled = "disabled"
)

// Analysis kinds counted by QuestionAnalysis.
const (
	AnalysisDegraded = "degraded"
	AnalysisFallback = "fallback"
)

// Metrics holds the collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	evaluations       *prometheus.CounterVec
	evaluationSeconds prometheus.Histogram
	rejected          prometheus.Counter
	analyses          *prometheus.CounterVec
	feedbackFallbacks prometheus.Counter
	narratives        *prometheus.CounterVec
}

// New creates Metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quizsense_evaluations_total",
			Help: "Evaluated quiz attempts by performance level",
		}, []string{"level"}),
		evaluationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "quizsense_evaluation_duration_seconds",
			Help:    "Time spent evaluating one attempt, narrative included",
			Buckets: prometheus.DefBuckets,
		}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "quizsense_evaluations_rejected_total",
			Help: "Attempts rejected as invalid input",
		}),
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quizsense_question_analyses_total",
			Help: "Question analyses that missed the rule tables or fell back",
		}, []string{"kind"}),
		feedbackFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "quizsense_feedback_fallbacks_total",
			Help: "Feedback bundles composed from the generic fallback",
		}),
		narratives: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quizsense_narrative_requests_total",
			Help: "Narrative feedback attempts by outcome",
		}, []string{"outcome"}),
	}
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObserveEvaluation(level string, d time.Duration) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(level).Inc()
	m.evaluationSeconds.Observe(d.Seconds())
}

func (m *Metrics) Rejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) QuestionAnalysis(kind string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(kind).Inc()
}

func (m *Metrics) FeedbackFallback() {
	if m == nil {
		return
	}
	m.feedbackFallbacks.Inc()
}

func (m *Metrics) Narrative(outcome string) {
	if m == nil {
		return
	}
	m.narratives.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps all metrics in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
