// Package engine evaluates quiz attempts. An Engine is built once, holds only
// immutable tables and collaborators, and is safe for concurrent use.
package engine

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/feedback"
	"github.com/abhisek/quizsense/internal/metrics"
	"github.com/abhisek/quizsense/internal/misconception"
	"github.com/abhisek/quizsense/internal/narrative"
	"github.com/abhisek/quizsense/internal/store"
)

// NarrativeGenerator produces narrative feedback. *narrative.Gateway
// implements it.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req narrative.Request) (*narrative.Narrative, error)
}

// EvaluationRecorder persists evaluation summaries. store.EventRepo
// implements it.
type EvaluationRecorder interface {
	AppendEvaluation(ctx context.Context, data store.EvaluationEventData) error
}

// Engine evaluates quiz attempts.
type Engine struct {
	composer  *feedback.Composer
	explainer *misconception.Explainer
	rules     *misconception.Rules
	narrator  NarrativeGenerator
	recorder  EvaluationRecorder
	metrics   *metrics.Metrics
	logger    *zap.Logger
	workers   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRules replaces the built-in misconception tables.
func WithRules(r *misconception.Rules) Option {
	return func(e *Engine) { e.rules = r }
}

// WithNarrator enables narrative feedback.
func WithNarrator(n NarrativeGenerator) Option {
	return func(e *Engine) { e.narrator = n }
}

// WithRecorder records every evaluation.
func WithRecorder(r EvaluationRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithMetrics counts evaluations and fallbacks.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithWorkers bounds how many answers are analyzed at once.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// New creates an Engine. Without options it uses the default rule tables,
// no narrative provider, and no recorder.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.logger = e.logger.Named("engine")
	if e.workers < 1 {
		e.workers = 1
	}
	e.composer = feedback.NewComposer(e.logger)
	e.explainer = misconception.NewExplainer(e.rules, e.logger)
	return e
}

// Rules returns the misconception tables in use.
func (e *Engine) Rules() *misconception.Rules {
	return e.explainer.Rules()
}

// ComputeStats reduces answers to quiz statistics.
func (e *Engine) ComputeStats(answers []analysis.Answer) (*analysis.QuizStats, error) {
	return analysis.ComputeStats(answers)
}

// Classify maps an accuracy percentage to a performance level.
func (e *Engine) Classify(accuracyPercent float64) analysis.PerformanceLevel {
	return analysis.Classify(accuracyPercent)
}

// AnalyzePattern computes streaks, trend and consistency.
func (e *Engine) AnalyzePattern(correctness []bool) (*analysis.PatternResult, error) {
	return analysis.AnalyzePattern(correctness)
}

// ComposeFeedback builds the feedback bundle for stats at level.
func (e *Engine) ComposeFeedback(stats analysis.QuizStats, level analysis.PerformanceLevel) feedback.Bundle {
	return e.composer.Compose(stats, level)
}

// AnalyzeQuestion explains one answer to q.
func (e *Engine) AnalyzeQuestion(q *misconception.Question, selectedOptionID string, timeSpentSeconds float64) misconception.QuestionAnalysis {
	return e.explainer.AnalyzeQuestion(q, selectedOptionID, timeSpentSeconds)
}
