package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/feedback"
	"github.com/abhisek/quizsense/internal/metrics"
	"github.com/abhisek/quizsense/internal/misconception"
	"github.com/abhisek/quizsense/internal/narrative"
	"github.com/abhisek/quizsense/internal/store"
	"github.com/abhisek/quizsense/internal/submission"
)

// Evaluate produces the full report for sub. It fails only on structurally
// invalid input: no answers, a duplicate question id, an answer to a question
// not in the submission, or a question without options or a single correct
// option. Answers are graded against the selected option; any IsCorrect
// value on the submission is ignored. Narrative failures fall back to the
// local feedback message.
func (e *Engine) Evaluate(ctx context.Context, sub *submission.Submission) (*Report, error) {
	start := time.Now()

	questions, err := e.validate(sub)
	if err != nil {
		e.metrics.Rejected()
		return nil, err
	}

	answers := grade(sub.Answers, questions)

	report := &Report{
		ID:        uuid.NewString(),
		AttemptID: sub.AttemptID,
		QuizID:    sub.QuizID,
		LearnerID: sub.LearnerID,
		Questions: make([]misconception.QuestionAnalysis, len(answers)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	g.Go(func() error {
		stats, err := analysis.ComputeStats(answers)
		if err != nil {
			return err
		}
		report.Stats = *stats
		report.Level = analysis.Classify(stats.AccuracyPercent)
		report.Feedback = e.composer.Compose(*stats, report.Level)
		return nil
	})
	g.Go(func() error {
		pattern, err := analysis.AnalyzePattern(analysis.CorrectnessSequence(answers))
		if err != nil {
			return err
		}
		report.Pattern = *pattern
		return nil
	})
	g.Go(func() error {
		categoryOf := make(map[string]string, len(questions))
		for id, q := range questions {
			categoryOf[id] = q.Category
		}
		report.Categories = analysis.CategoryBreakdown(answers, categoryOf)
		report.Strengths, report.Weaknesses = feedback.Highlights(report.Categories)
		return nil
	})
	for i, a := range answers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Questions[i] = e.explainer.AnalyzeQuestion(questions[a.QuestionID], a.SelectedOptionID, a.TimeSpentSeconds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.applyNarrative(ctx, sub, answers, questions, report)
	e.observe(ctx, report, time.Since(start))
	return report, nil
}

func (e *Engine) validate(sub *submission.Submission) (map[string]*misconception.Question, error) {
	if sub == nil || len(sub.Answers) == 0 {
		return nil, fmt.Errorf("no answers: %w", analysis.ErrInvalidInput)
	}

	questions := make(map[string]*misconception.Question, len(sub.Questions))
	for i := range sub.Questions {
		id := sub.Questions[i].ID
		if _, dup := questions[id]; dup {
			return nil, fmt.Errorf("duplicate question %q: %w", id, analysis.ErrInvalidInput)
		}
		questions[id] = &sub.Questions[i]
	}

	for i, a := range sub.Answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("answer %d refers to unknown question %q: %w", i+1, a.QuestionID, analysis.ErrInvalidInput)
		}
		if err := misconception.ValidateQuestion(q); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// grade returns copies of answers with IsCorrect taken from the selected
// option. An unknown option is incorrect.
func grade(answers []analysis.Answer, questions map[string]*misconception.Question) []analysis.Answer {
	graded := make([]analysis.Answer, len(answers))
	for i, a := range answers {
		opt := questions[a.QuestionID].Option(a.SelectedOptionID)
		a.IsCorrect = opt != nil && opt.IsCorrect
		graded[i] = a
	}
	return graded
}

func (e *Engine) applyNarrative(ctx context.Context, sub *submission.Submission, answers []analysis.Answer, questions map[string]*misconception.Question, report *Report) {
	report.Narrative = report.Feedback.Performance.Message
	report.NarrativeSource = SourceLocal

	if e.narrator == nil {
		e.metrics.Narrative(metrics.NarrativeDisabled)
		return
	}

	lines := make([]narrative.QuestionLine, len(answers))
	for i, a := range answers {
		q := questions[a.QuestionID]
		lines[i] = narrative.QuestionLine{
			Category:         q.Category,
			Difficulty:       string(q.Difficulty),
			IsCorrect:        a.IsCorrect,
			TimeSpentSeconds: a.TimeSpentSeconds,
		}
	}

	n, err := e.narrator.Generate(ctx, narrative.Request{
		Stats:      report.Stats,
		Categories: report.Categories,
		Questions:  lines,
		History:    sub.History,
	})
	if err != nil {
		outcome := metrics.NarrativeError
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.NarrativeTimeout
		}
		e.metrics.Narrative(outcome)
		e.logger.Warn("narrative feedback unavailable, using local feedback",
			zap.String("attempt_id", report.AttemptID),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return
	}

	e.metrics.Narrative(metrics.NarrativeProvider)
	report.Narrative = n.Text()
	report.NarrativeSource = SourceProvider
	report.NarrativeDetail = n
}

func (e *Engine) observe(ctx context.Context, report *Report, elapsed time.Duration) {
	if report.Feedback.Fallback {
		e.metrics.FeedbackFallback()
	}
	for _, q := range report.Questions {
		switch {
		case q.Fallback:
			e.metrics.QuestionAnalysis(metrics.AnalysisFallback)
		case q.Degraded:
			e.metrics.QuestionAnalysis(metrics.AnalysisDegraded)
		}
	}
	e.metrics.ObserveEvaluation(string(report.Level), elapsed)

	e.logger.Info("evaluated attempt",
		zap.String("attempt_id", report.AttemptID),
		zap.String("level", string(report.Level)),
		zap.Float64("accuracy", report.Stats.AccuracyPercent),
		zap.String("narrative", report.NarrativeSource),
		zap.Duration("elapsed", elapsed),
	)

	if e.recorder == nil {
		return
	}
	err := e.recorder.AppendEvaluation(context.WithoutCancel(ctx), store.EvaluationEventData{
		ReportID:          report.ID,
		AttemptID:         report.AttemptID,
		QuizID:            report.QuizID,
		LearnerID:         report.LearnerID,
		TotalQuestions:    report.Stats.TotalQuestions,
		CorrectAnswers:    report.Stats.CorrectAnswers,
		Accuracy:          report.Stats.AccuracyPercent,
		Level:             string(report.Level),
		Trend:             string(report.Pattern.Trend),
		Consistency:       string(report.Pattern.Consistency),
		DegradedQuestions: report.DegradedQuestions(),
		NarrativeSource:   report.NarrativeSource,
		Weaknesses:        report.Weaknesses,
		DurationMs:        elapsed.Milliseconds(),
	})
	if err != nil {
		e.logger.Warn("failed to record evaluation", zap.String("attempt_id", report.AttemptID), zap.Error(err))
	}
}
