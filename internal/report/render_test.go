package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/engine"
	"github.com/abhisek/quizsense/internal/misconception"
	"github.com/abhisek/quizsense/internal/submission"
)

func sampleReport(t *testing.T) *engine.Report {
	t.Helper()
	q := misconception.Question{
		ID:          "q1",
		Text:        "Main job of a neuron?",
		Category:    "Neuroscience",
		Tags:        []string{"neurons"},
		Explanation: "Neurons transmit signals.",
		Options: []misconception.Option{
			{ID: "a", Text: "Transmit signals", IsCorrect: true},
			{ID: "b", Text: "To filter blood"},
		},
	}
	sub := &submission.Submission{
		AttemptID: "att-42",
		QuizID:    "neuro-101",
		Questions: []misconception.Question{q},
		Answers: []analysis.Answer{
			{QuestionID: "q1", SelectedOptionID: "a", IsCorrect: true, TimeSpentSeconds: 8},
			{QuestionID: "q1", SelectedOptionID: "b", TimeSpentSeconds: 12},
		},
	}
	r, err := engine.New().Evaluate(context.Background(), sub)
	require.NoError(t, err)
	return r
}

func TestRender(t *testing.T) {
	out := ansi.Strip(Render(sampleReport(t), Options{Width: 100, Questions: true}))

	for _, want := range []string{
		"Quiz Report",
		"neuro-101",
		"attempt att-42",
		"NEEDS IMPROVEMENT",
		"1/2 correct · 50% accuracy",
		"Trend: Variable",
		"Neuroscience",
		"Weaknesses: Neuroscience",
		"Recommendations",
		"Next steps",
		"1. ✓ Neuroscience",
		"2. ✗ Neuroscience",
		"Related: Neurotransmitters",
		"Feedback (local)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderWithoutQuestions(t *testing.T) {
	out := ansi.Strip(Render(sampleReport(t), Options{}))
	assert.NotContains(t, out, "Questions")
	assert.Contains(t, out, "Quiz Report")
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), Options{Plain: true}))
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Quiz Report")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "att-42", decoded["attemptId"])
	assert.Equal(t, "needs_improvement", decoded["level"])
	assert.Equal(t, "local", decoded["narrativeSource"])
	questions, ok := decoded["questions"].([]any)
	require.True(t, ok)
	assert.Len(t, questions, 2)
	assert.True(t, strings.HasPrefix(questions[0].(map[string]any)["explanation"].(string), "Correct!"))
}

func TestAccuracyBar(t *testing.T) {
	bar := ansi.Strip(accuracyBar("Neuro", 8, 50, 40))
	assert.True(t, strings.HasPrefix(bar, "Neuro     "))
	assert.True(t, strings.HasSuffix(bar, "  50%"))
	assert.Equal(t, 40, ansi.StringWidth(bar))
}
