package narrative

import (
	"strings"
	"time"

	"github.com/abhisek/quizsense/internal/analysis"
)

// Config holds narrative generation settings.
type Config struct {
	// Timeout bounds a whole Generate call, retries included.
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     10 * time.Second,
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

// Request is everything the prompt is built from.
type Request struct {
	Stats      analysis.QuizStats
	Categories []analysis.CategoryResult
	Questions  []QuestionLine

	// History is optional.
	History *History
}

// QuestionLine is one answered question as the model sees it.
type QuestionLine struct {
	Category         string
	Difficulty       string
	IsCorrect        bool
	TimeSpentSeconds float64
}

// History summarizes the learner's earlier attempts.
type History struct {
	TotalQuizzesTaken int      `json:"totalQuizzesTaken"`
	AverageAccuracy   float64  `json:"averageAccuracy"`
	WeakAreas         []string `json:"weakAreas"`
}

// Narrative is the generated feedback.
type Narrative struct {
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Recommendations     []string `json:"recommendations"`
	TimeManagement      string   `json:"timeManagement,omitempty"`
}

// Text renders n as plain text.
func (n *Narrative) Text() string {
	var b strings.Builder
	b.WriteString(n.Summary)
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n\n" + title + ":")
		for _, item := range items {
			b.WriteString("\n- " + item)
		}
	}
	section("Strengths", n.Strengths)
	section("Areas for improvement", n.AreasForImprovement)
	section("Recommendations", n.Recommendations)
	if n.TimeManagement != "" {
		b.WriteString("\n\nTime management: " + n.TimeManagement)
	}
	return b.String()
}
