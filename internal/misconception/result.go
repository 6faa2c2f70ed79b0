package misconception

// Understanding is the judged level of concept understanding.
type Understanding string

const (
	UnderstandingGood             Understanding = "good"
	UnderstandingNeedsImprovement Understanding = "needs_improvement"
	UnderstandingUnknown          Understanding = "unknown"
)

// PracticeRecommendation suggests what to practice after a question.
type PracticeRecommendation struct {
	NextDifficulty   Difficulty `json:"nextDifficulty"`
	FocusAreas       []string   `json:"focusAreas"`
	RecommendedCount int        `json:"recommendedCount"`
}

// QuestionAnalysis is the per-question feedback for one answer.
type QuestionAnalysis struct {
	QuestionID       string                 `json:"questionId"`
	Topic            string                 `json:"topic"`
	Concept          string                 `json:"concept"`
	IsCorrect        bool                   `json:"isCorrect"`
	TimeSpentSeconds float64                `json:"timeSpent"`
	Understanding    Understanding          `json:"understanding"`
	Suggestion       string                 `json:"suggestion"`
	Explanation      string                 `json:"explanation"`
	RelatedTopics    []string               `json:"relatedTopics"`
	Practice         PracticeRecommendation `json:"practiceRecommendation"`

	// Degraded is set when a documented fallback value stood in for a real
	// one: the selected option was unknown or no rule matched the tags.
	Degraded bool `json:"degraded,omitempty"`
	// Fallback is set when the question was malformed and only the minimal
	// analysis could be produced.
	Fallback bool `json:"fallback,omitempty"`
}
