package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveEvaluation("good", 20*time.Millisecond)
	m.ObserveEvaluation("good", 30*time.Millisecond)
	m.ObserveEvaluation("fair", time.Millisecond)
	m.Rejected()
	m.QuestionAnalysis(AnalysisDegraded)
	m.FeedbackFallback()
	m.Narrative(NarrativeTimeout)
	m.Narrative(NarrativeProvider)
	m.Narrative(NarrativeProvider)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluations.WithLabelValues("good")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("fair")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues(AnalysisDegraded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedbackFallbacks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.narratives.WithLabelValues(NarrativeProvider)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.evaluationSeconds))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluation("good", time.Second)
		m.Rejected()
		m.QuestionAnalysis(AnalysisFallback)
		m.FeedbackFallback()
		m.Narrative(NarrativeError)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveEvaluation("excellent", time.Millisecond)
	m.Narrative(NarrativeDisabled)

	path := filepath.Join(t.TempDir(), "quizsense.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `quizsense_evaluations_total{level="excellent"} 1`)
	assert.Contains(t, string(data), `quizsense_narrative_requests_total{outcome="disabled"} 1`)
}
