package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	llmTable        = "llm_request_events"
	evaluationTable = "evaluation_events"
)

var llmColumns = []string{
	"sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

var evaluationColumns = []string{
	"sequence", "timestamp", "report_id", "attempt_id", "quiz_id", "learner_id",
	"total_questions", "correct_answers", "accuracy", "level", "trend",
	"consistency", "degraded_questions", "narrative_source", "weaknesses", "duration_ms",
}

// eventRepo implements EventRepo with ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(llmTable).
		Columns(llmColumns...).
		Values(
			seqNum, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendEvaluation(ctx context.Context, data EvaluationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	weak := data.Weaknesses
	if weak == nil {
		weak = []string{}
	}
	weakJSON, err := json.Marshal(weak)
	if err != nil {
		return fmt.Errorf("marshal weaknesses: %w", err)
	}

	query, args := builder().Insert(evaluationTable).
		Columns(evaluationColumns...).
		Values(
			seqNum, time.Now().UnixMilli(), data.ReportID, data.AttemptID, data.QuizID, data.LearnerID,
			data.TotalQuestions, data.CorrectAnswers, data.Accuracy, data.Level, data.Trend,
			data.Consistency, data.DegradedQuestions, data.NarrativeSource, string(weakJSON), data.DurationMs,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save evaluation event: %w", err)
	}
	return nil
}

// selectEvents builds a newest-first select over table filtered by opts.
func selectEvents(table string, columns []string, opts QueryOpts) *entsql.Selector {
	s := builder().Select(columns...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	query, args := selectEvents(llmTable, llmColumns, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	defer rows.Close()

	var records []LLMRequestEventRecord
	for rows.Next() {
		var (
			rec LLMRequestEventRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
			&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan LLM request event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationEventRecord, error) {
	query, args := selectEvents(evaluationTable, evaluationColumns, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query evaluation events: %w", err)
	}
	defer rows.Close()

	var records []EvaluationEventRecord
	for rows.Next() {
		var (
			rec      EvaluationEventRecord
			ts       int64
			weakJSON string
		)
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.ReportID, &rec.AttemptID, &rec.QuizID, &rec.LearnerID,
			&rec.TotalQuestions, &rec.CorrectAnswers, &rec.Accuracy, &rec.Level, &rec.Trend,
			&rec.Consistency, &rec.DegradedQuestions, &rec.NarrativeSource, &weakJSON, &rec.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation event: %w", err)
		}
		if err := json.Unmarshal([]byte(weakJSON), &rec.Weaknesses); err != nil {
			return nil, fmt.Errorf("decode weaknesses of event %d: %w", rec.Sequence, err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]UsageSummary, error) {
	query, args := builder().Select(
		"purpose",
		entsql.Count("*"),
		"SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)",
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		From(entsql.Table(llmTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var out []UsageSummary
	for rows.Next() {
		var u UsageSummary
		if err := rows.Scan(&u.Purpose, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LevelCounts(ctx context.Context) (map[string]int, error) {
	query, args := builder().Select("level", entsql.Count("*")).
		From(entsql.Table(evaluationTable)).
		GroupBy("level").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query level counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan level count: %w", err)
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

func (r *eventRepo) LearnerSummary(ctx context.Context, learnerID string) (*LearnerSummary, error) {
	query, args := builder().Select("accuracy", "weaknesses").
		From(entsql.Table(evaluationTable)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("sequence")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query learner evaluations: %w", err)
	}
	defer rows.Close()

	var (
		total   float64
		summary LearnerSummary
		seen    = make(map[string]bool)
	)
	for rows.Next() {
		var (
			acc      float64
			weakJSON string
			weak     []string
		)
		if err := rows.Scan(&acc, &weakJSON); err != nil {
			return nil, fmt.Errorf("scan learner evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(weakJSON), &weak); err != nil {
			return nil, fmt.Errorf("decode weaknesses: %w", err)
		}
		total += acc
		summary.QuizzesTaken++
		for _, w := range weak {
			if !seen[w] {
				seen[w] = true
				summary.WeakAreas = append(summary.WeakAreas, w)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if summary.QuizzesTaken == 0 {
		return nil, nil
	}
	summary.AverageAccuracy = total / float64(summary.QuizzesTaken)
	return &summary, nil
}
