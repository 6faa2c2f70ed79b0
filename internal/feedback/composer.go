package feedback

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/quizsense/internal/analysis"
)

// Composer turns quiz statistics and a performance level into a feedback
// bundle. It holds only immutable tables and is safe for concurrent use.
type Composer struct {
	plans  map[analysis.PerformanceLevel]levelPlan
	logger *zap.Logger
}

// NewComposer creates a Composer. A nil logger disables logging.
func NewComposer(logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		plans:  defaultPlans(),
		logger: logger.Named("feedback"),
	}
}

// Compose builds the feedback bundle for stats at the given level. It never
// fails: an unknown level produces the generic fallback bundle.
func (c *Composer) Compose(stats analysis.QuizStats, level analysis.PerformanceLevel) Bundle {
	plan, ok := c.plans[level]
	if !ok {
		c.logger.Warn("no feedback plan for level, using fallback",
			zap.String("level", string(level)),
			zap.Float64("accuracy", stats.AccuracyPercent),
		)
		return c.fallback(stats, level)
	}

	return Bundle{
		Performance:     performance(stats, level, plan.qualifier),
		Recommendations: plan.recommendations[:],
		NextSteps: NextSteps{
			Action:          plan.action,
			SuggestedTopics: plan.topics[:],
			PracticeCount:   plan.practiceCount,
		},
	}
}

func (c *Composer) fallback(stats analysis.QuizStats, level analysis.PerformanceLevel) Bundle {
	recs := fallbackRecommendations
	topics := fallbackTopics
	return Bundle{
		Performance:     performance(stats, level, fallbackQualifier),
		Recommendations: recs[:],
		NextSteps: NextSteps{
			Action:          fallbackAction,
			SuggestedTopics: topics[:],
			PracticeCount:   fallbackPracticeCount,
		},
		Fallback: true,
	}
}

func performance(stats analysis.QuizStats, level analysis.PerformanceLevel, qualifier string) Performance {
	return Performance{
		Level:          level,
		Score:          stats.AccuracyPercent,
		CorrectAnswers: stats.CorrectAnswers,
		TotalQuestions: stats.TotalQuestions,
		Message:        Message(qualifier, stats),
	}
}

// Message renders the score sentence, e.g.
// "Good job! You scored 75% with 15 correct answers out of 20."
func Message(qualifier string, stats analysis.QuizStats) string {
	return fmt.Sprintf("%s You scored %s%% with %d correct answers out of %d.",
		qualifier, FormatPercent(stats.AccuracyPercent), stats.CorrectAnswers, stats.TotalQuestions)
}

// FormatPercent prints a percentage with the shortest exact representation
// ("75", "66.66666666666667").
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
