package misconception

import (
	"errors"
	"fmt"

	"github.com/abhisek/quizsense/internal/analysis"
)

// ErrInvalidQuestion marks a structurally broken question: no options, or
// no option flagged correct. It wraps analysis.ErrInvalidInput.
var ErrInvalidQuestion = fmt.Errorf("invalid question: %w", analysis.ErrInvalidInput)

// Option is one answer choice of a question.
type Option struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
}

// Question is a multiple-choice question as supplied by the question bank.
type Question struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Type        string     `json:"type,omitempty"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Tags        []string   `json:"tags"`
	Explanation string     `json:"explanation"`
	Options     []Option   `json:"options"`
}

// Option returns the option with the given ID, or nil.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectOption returns the first option flagged correct, or nil.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// ValidateQuestion checks that q has options and exactly one correct option.
func ValidateQuestion(q *Question) error {
	if q == nil {
		return fmt.Errorf("nil question: %w", ErrInvalidQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options: %w", q.ID, ErrInvalidQuestion)
	}
	correct := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correct++
		}
	}
	switch {
	case correct == 0:
		return fmt.Errorf("question %q has no correct option: %w", q.ID, ErrInvalidQuestion)
	case correct > 1:
		return fmt.Errorf("question %q has %d correct options: %w", q.ID, correct, ErrInvalidQuestion)
	}
	return nil
}

// IsInvalidQuestion reports whether err marks a malformed question.
func IsInvalidQuestion(err error) bool {
	return errors.Is(err, ErrInvalidQuestion)
}
