package analysis

import "errors"

// ErrInvalidInput is returned when an input cannot be analyzed at all,
// such as an empty answer set.
var ErrInvalidInput = errors.New("invalid input")

// Answer is a single submitted answer. Answers are immutable once submitted.
type Answer struct {
	QuestionID       string  `json:"questionId"`
	SelectedOptionID string  `json:"selectedOptionId"`
	IsCorrect        bool    `json:"isCorrect"`
	TimeSpentSeconds float64 `json:"timeSpent"`
}

// QuizStats holds quiz-level aggregate statistics.
type QuizStats struct {
	TotalQuestions         int     `json:"totalQuestions"`
	CorrectAnswers         int     `json:"correctAnswers"`
	TotalTimeSeconds       float64 `json:"totalTime"`
	AccuracyPercent        float64 `json:"accuracy"`
	AverageTimePerQuestion float64 `json:"averageTimePerQuestion"`
}

// PerformanceLevel is a qualitative grade derived from accuracy.
type PerformanceLevel string

const (
	LevelExcellent        PerformanceLevel = "excellent"
	LevelVeryGood         PerformanceLevel = "very_good"
	LevelGood             PerformanceLevel = "good"
	LevelFair             PerformanceLevel = "fair"
	LevelNeedsImprovement PerformanceLevel = "needs_improvement"
)

// AllLevels returns every performance level, best first.
func AllLevels() []PerformanceLevel {
	return []PerformanceLevel{
		LevelExcellent,
		LevelVeryGood,
		LevelGood,
		LevelFair,
		LevelNeedsImprovement,
	}
}

// Rank orders levels: 0 is best. Unknown levels rank after every known level.
func (l PerformanceLevel) Rank() int {
	for i, lvl := range AllLevels() {
		if lvl == l {
			return i
		}
	}
	return len(AllLevels())
}

// Valid reports whether l is one of the known levels.
func (l PerformanceLevel) Valid() bool {
	return l.Rank() < len(AllLevels())
}

// Trend describes how correctness moved over the course of a quiz.
type Trend string

const (
	TrendImproving  Trend = "Improving"
	TrendConsistent Trend = "Consistent"
	TrendVariable   Trend = "Variable"
)

// Consistency is a finer-grained readout of correctness variance.
type Consistency string

const (
	ConsistencyVeryConsistent     Consistency = "Very Consistent"
	ConsistencyConsistent         Consistency = "Consistent"
	ConsistencySomewhatConsistent Consistency = "Somewhat Consistent"
	ConsistencyInconsistent       Consistency = "Inconsistent"
)

// PatternResult summarizes behavioral patterns in the correctness sequence.
type PatternResult struct {
	Total                  int         `json:"total"`
	Correct                int         `json:"correct"`
	AccuracyPercent        float64     `json:"accuracy"`
	LongestCorrectStreak   int         `json:"longestCorrectStreak"`
	LongestIncorrectStreak int         `json:"longestIncorrectStreak"`
	Variance               float64     `json:"variance"`
	Trend                  Trend       `json:"pattern"`
	Consistency            Consistency `json:"consistency"`
}
