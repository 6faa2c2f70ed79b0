package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/llm"
)

const validNarrative = `{
	"summary": "You did well on neurons but synapses need work.",
	"strengths": ["Neuron structure"],
	"areasForImprovement": ["Synaptic transmission"],
	"recommendations": ["Review neurotransmitter release", "Practice 10 synapse questions"],
	"timeManagement": ""
}`

func sampleRequest() Request {
	return Request{
		Stats: analysis.QuizStats{
			TotalQuestions:         4,
			CorrectAnswers:         3,
			TotalTimeSeconds:       50,
			AccuracyPercent:        75,
			AverageTimePerQuestion: 12.5,
		},
		Categories: []analysis.CategoryResult{
			{Name: "Neurons", Total: 2, Correct: 2, Accuracy: 100},
			{Name: "Synapses", Total: 2, Correct: 1, Accuracy: 50},
		},
		Questions: []QuestionLine{
			{Category: "Neurons", Difficulty: "beginner", IsCorrect: true, TimeSpentSeconds: 10},
			{Category: "Synapses", IsCorrect: false, TimeSpentSeconds: 20},
		},
	}
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validNarrative)})
	g := NewGateway(mock, DefaultConfig(), nil)

	n, err := g.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "You did well on neurons but synapses need work.", n.Summary)
	assert.Equal(t, []string{"Neuron structure"}, n.Strengths)
	assert.Len(t, n.Recommendations, 2)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, systemPrompt, calls[0].System)
	assert.Equal(t, NarrativeSchema, calls[0].Schema)
	assert.Equal(t, 500, calls[0].MaxTokens)
	assert.Contains(t, calls[0].Messages[0].Content, "- Accuracy: 75%")
}

func TestGenerateTimesOut(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(validNarrative),
		Delay:   time.Second,
	})
	g := NewGateway(mock, Config{Timeout: 10 * time.Millisecond}, nil)

	start := time.Now()
	_, err := g.Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestGenerateHonorsCallerCancellation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(validNarrative),
		Delay:   time.Second,
	})
	g := NewGateway(mock, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, sampleRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateFailures(t *testing.T) {
	cases := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"schema mismatch", llm.MockResponse{Content: json.RawMessage(`{"feedback":"x"}`)}},
		{"empty summary", llm.MockResponse{Content: json.RawMessage(`{"summary":"","strengths":[],"areasForImprovement":[],"recommendations":[],"timeManagement":""}`)}},
		{"not json", llm.MockResponse{Content: json.RawMessage(`Great job!`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGateway(llm.NewMockProvider(tc.resp), DefaultConfig(), nil)
			n, err := g.Generate(context.Background(), sampleRequest())
			assert.Error(t, err)
			assert.Nil(t, n)
		})
	}
}

func TestNewGatewayDefaults(t *testing.T) {
	g := NewGateway(llm.NewMockProvider(), Config{}, nil)
	assert.Equal(t, 10*time.Second, g.Timeout())
	assert.Equal(t, 500, g.cfg.MaxTokens)
}

func TestNarrativeText(t *testing.T) {
	n := &Narrative{
		Summary:         "Solid work.",
		Strengths:       []string{"Neurons"},
		Recommendations: []string{"Review synapses"},
		TimeManagement:  "Slow down on hard questions.",
	}
	assert.Equal(t,
		"Solid work.\n\nStrengths:\n- Neurons\n\nRecommendations:\n- Review synapses\n\nTime management: Slow down on hard questions.",
		n.Text())
}
