package engine

import (
	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/feedback"
	"github.com/abhisek/quizsense/internal/misconception"
	"github.com/abhisek/quizsense/internal/narrative"
)

// Narrative sources.
const (
	SourceProvider = "provider"
	SourceLocal    = "local"
)

// Report is the complete evaluation of one attempt.
type Report struct {
	ID        string `json:"id"`
	AttemptID string `json:"attemptId"`
	QuizID    string `json:"quizId,omitempty"`
	LearnerID string `json:"learnerId,omitempty"`

	Stats    analysis.QuizStats        `json:"stats"`
	Level    analysis.PerformanceLevel `json:"level"`
	Pattern  analysis.PatternResult    `json:"pattern"`
	Feedback feedback.Bundle           `json:"feedback"`

	Categories []analysis.CategoryResult `json:"categories"`
	Strengths  []string                  `json:"strengths"`
	Weaknesses []string                  `json:"weaknesses"`

	// Questions holds one analysis per answer, in answer order.
	Questions []misconception.QuestionAnalysis `json:"questions"`

	// Narrative is the provider's feedback text, or the local feedback
	// message when the provider was absent or failed.
	Narrative       string               `json:"narrative"`
	NarrativeSource string               `json:"narrativeSource"`
	NarrativeDetail *narrative.Narrative `json:"narrativeDetail,omitempty"`
}

// DegradedQuestions counts analyses that used a documented fallback value.
func (r *Report) DegradedQuestions() int {
	n := 0
	for _, q := range r.Questions {
		if q.Degraded || q.Fallback {
			n++
		}
	}
	return n
}
