package analysis

import (
	"fmt"
	"math"
)

// ComputeStats reduces an ordered answer list to quiz-level statistics.
// An empty list, or a negative or non-finite time, yields ErrInvalidInput.
func ComputeStats(answers []Answer) (*QuizStats, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("compute stats: no answers: %w", ErrInvalidInput)
	}

	var correct int
	var totalTime float64
	for i, a := range answers {
		if a.TimeSpentSeconds < 0 || math.IsNaN(a.TimeSpentSeconds) || math.IsInf(a.TimeSpentSeconds, 0) {
			return nil, fmt.Errorf("compute stats: answer %d has time %v: %w", i, a.TimeSpentSeconds, ErrInvalidInput)
		}
		if a.IsCorrect {
			correct++
		}
		totalTime += a.TimeSpentSeconds
	}

	total := len(answers)
	return &QuizStats{
		TotalQuestions:         total,
		CorrectAnswers:         correct,
		TotalTimeSeconds:       totalTime,
		AccuracyPercent:        Accuracy(correct, total),
		AverageTimePerQuestion: totalTime / float64(total),
	}, nil
}

// Accuracy returns 100*correct/total, or 0 when total is not positive.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
