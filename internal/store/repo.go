package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData is one call to a model provider.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLMRequestEventData.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// EvaluationEventData summarizes one evaluated quiz attempt.
type EvaluationEventData struct {
	ReportID          string
	AttemptID         string
	QuizID            string
	LearnerID         string
	TotalQuestions    int
	CorrectAnswers    int
	Accuracy          float64
	Level             string
	Trend             string
	Consistency       string
	DegradedQuestions int
	NarrativeSource   string
	Weaknesses        []string
	DurationMs        int64
}

// EvaluationEventRecord is a stored EvaluationEventData.
type EvaluationEventRecord struct {
	EvaluationEventData
	Sequence  int64
	Timestamp time.Time
}

// UsageSummary aggregates model requests for one purpose.
type UsageSummary struct {
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// LearnerSummary aggregates a learner's past evaluations.
type LearnerSummary struct {
	QuizzesTaken    int
	AverageAccuracy float64

	// WeakAreas lists categories that were weak in any past attempt,
	// most recent first.
	WeakAreas []string
}

// EventRepo appends and queries events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendEvaluation(ctx context.Context, data EvaluationEventData) error

	// QueryLLMRequests returns events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// QueryEvaluations returns events newest first.
	QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationEventRecord, error)

	UsageByPurpose(ctx context.Context) ([]UsageSummary, error)
	LevelCounts(ctx context.Context) (map[string]int, error)

	// LearnerSummary returns nil when the learner has no evaluations.
	LearnerSummary(ctx context.Context, learnerID string) (*LearnerSummary, error)
}
