package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	cases := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
	}
	for _, tc := range cases {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tc.pragma).Scan(&got))
		assert.Equal(t, tc.want, got, tc.pragma)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendEvaluation(ctx, EvaluationEventData{ReportID: "r1", Level: "good"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EventRepo().AppendEvaluation(ctx, EvaluationEventData{ReportID: "r2", Level: "fair"}))

	records, err := s.EventRepo().QueryEvaluations(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].Sequence)
	assert.Equal(t, "r2", records[0].ReportID)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "narrative-feedback", Success: true}))
	require.NoError(t, repo.AppendEvaluation(ctx, EvaluationEventData{ReportID: "r1", Level: "good"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "narrative-feedback"}))

	llm, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, llm, 2)
	assert.Equal(t, int64(3), llm[0].Sequence)
	assert.Equal(t, int64(1), llm[1].Sequence)

	evals, err := repo.QueryEvaluations(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, int64(2), evals[0].Sequence)
}

func TestSequenceConcurrentAppends(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AppendEvaluation(ctx, EvaluationEventData{ReportID: "r", Level: "good"}))
		}()
	}
	wg.Wait()

	records, err := repo.QueryEvaluations(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 20)
	seen := make(map[int64]bool)
	for _, r := range records {
		assert.False(t, seen[r.Sequence], "duplicate sequence %d", r.Sequence)
		seen[r.Sequence] = true
	}
}

func TestLLMRequestRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	in := LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "narrative-feedback",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    850,
		Success:      false,
		ErrorMessage: "context deadline exceeded",
		RequestBody:  "[user]\nhello",
		ResponseBody: "",
	}
	require.NoError(t, repo.AppendLLMRequest(ctx, in))

	out, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in, out[0].LLMRequestEventData)
	assert.WithinDuration(t, time.Now(), out[0].Timestamp, time.Minute)
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, level := range []string{"excellent", "good", "fair", "good", "needs_improvement"} {
		require.NoError(t, repo.AppendEvaluation(ctx, EvaluationEventData{ReportID: "r", Level: level}))
	}

	limited, err := repo.QueryEvaluations(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "needs_improvement", limited[0].Level)

	window, err := repo.QueryEvaluations(ctx, QueryOpts{After: 1, Before: 4})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, int64(3), window[0].Sequence)
	assert.Equal(t, int64(2), window[1].Sequence)

	future, err := repo.QueryEvaluations(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)

	past, err := repo.QueryEvaluations(ctx, QueryOpts{To: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Len(t, past, 5)
}

func TestUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "mock", Purpose: "narrative-feedback", InputTokens: 100, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "narrative-feedback", InputTokens: 50, OutputTokens: 0, LatencyMs: 300, Success: false},
		{Provider: "mock", Model: "mock", Purpose: "other", InputTokens: 1, OutputTokens: 1, LatencyMs: 10, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	usage, err := repo.UsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, UsageSummary{
		Purpose:      "narrative-feedback",
		Requests:     2,
		Failures:     1,
		InputTokens:  150,
		OutputTokens: 20,
		AvgLatencyMs: 200,
	}, usage[0])
	assert.Equal(t, "other", usage[1].Purpose)
}

func TestLevelCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, level := range []string{"good", "good", "fair"} {
		require.NoError(t, repo.AppendEvaluation(ctx, EvaluationEventData{ReportID: "r", Level: level}))
	}

	counts, err := repo.LevelCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"good": 2, "fair": 1}, counts)
}

func TestLearnerSummary(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	none, err := repo.LearnerSummary(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, none)

	attempts := []EvaluationEventData{
		{ReportID: "r1", LearnerID: "ana", Accuracy: 50, Level: "needs_improvement", Weaknesses: []string{"Synapses", "Neurons"}},
		{ReportID: "r2", LearnerID: "ben", Accuracy: 100, Level: "excellent"},
		{ReportID: "r3", LearnerID: "ana", Accuracy: 80, Level: "very_good", Weaknesses: []string{"Brain Anatomy", "Synapses"}},
	}
	for _, a := range attempts {
		require.NoError(t, repo.AppendEvaluation(ctx, a))
	}

	got, err := repo.LearnerSummary(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.QuizzesTaken)
	assert.InDelta(t, 65.0, got.AverageAccuracy, 1e-9)
	assert.Equal(t, []string{"Brain Anatomy", "Synapses", "Neurons"}, got.WeakAreas)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("QUIZSENSE_DB", filepath.Join(dir, "nested", "custom.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "custom.db"), p)
	assert.DirExists(t, filepath.Join(dir, "nested"))

	t.Setenv("QUIZSENSE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quizsense", "quizsense.db"), p)
}
