package feedback

import "github.com/abhisek/quizsense/internal/analysis"

// Performance summarizes the attempt's score and level.
type Performance struct {
	Level          analysis.PerformanceLevel `json:"level"`
	Score          float64                   `json:"score"`
	CorrectAnswers int                       `json:"correctAnswers"`
	TotalQuestions int                       `json:"totalQuestions"`
	Message        string                    `json:"message"`
}

// NextSteps is the suggested follow-up for the learner.
type NextSteps struct {
	Action          string   `json:"action"`
	SuggestedTopics []string `json:"suggestedTopics"`
	PracticeCount   int      `json:"practiceCount"`
}

// Bundle is the structured feedback for one attempt.
type Bundle struct {
	Performance     Performance `json:"performance"`
	Recommendations []string    `json:"recommendations"`
	NextSteps       NextSteps   `json:"nextSteps"`

	// Fallback is set when the generic bundle was returned instead of
	// the per-level one.
	Fallback bool `json:"fallback,omitempty"`
}
