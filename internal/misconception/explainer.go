package misconception

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	invalidChoiceSuggestion = "Please provide a valid answer choice."
	noSelectionExplanation  = "No answer was selected. Make sure to choose an answer for each question."
)

// Practice counts after a correct or incorrect answer.
const (
	correctPracticeCount   = 5
	incorrectPracticeCount = 10
)

// Explainer analyzes individual answers against the rule tables. It holds
// no mutable state and is safe for concurrent use.
type Explainer struct {
	rules  *Rules
	logger *zap.Logger
}

// NewExplainer creates an Explainer over rules. Nil rules means the
// default tables; a nil logger disables logging.
func NewExplainer(rules *Rules, logger *zap.Logger) *Explainer {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explainer{rules: rules, logger: logger.Named("misconception")}
}

// Rules returns the tables the explainer reads.
func (e *Explainer) Rules() *Rules {
	return e.rules
}

// AnalyzeQuestion explains the learner's choice of selectedOptionID for q.
// It always returns an analysis: an unknown option yields an "unknown"
// understanding, and a malformed question yields the minimal fallback.
func (e *Explainer) AnalyzeQuestion(q *Question, selectedOptionID string, timeSpentSeconds float64) QuestionAnalysis {
	if q == nil {
		q = &Question{}
	}
	selected := q.Option(selectedOptionID)
	isCorrect := selected != nil && selected.IsCorrect

	if err := ValidateQuestion(q); err != nil {
		e.logger.Warn("malformed question, using fallback analysis",
			zap.String("question_id", q.ID),
			zap.Error(err),
		)
		return fallbackAnalysis(q, isCorrect, timeSpentSeconds)
	}

	qa := QuestionAnalysis{
		QuestionID:       q.ID,
		Topic:            q.Category,
		Concept:          q.Text,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: timeSpentSeconds,
		RelatedTopics:    e.rules.RelatedTopicsFor(q.Category, q.Tags),
		Practice:         practiceRecommendation(q, isCorrect),
	}

	switch {
	case selected == nil:
		e.logger.Debug("selected option not found",
			zap.String("question_id", q.ID),
			zap.String("option_id", selectedOptionID),
		)
		qa.Understanding = UnderstandingUnknown
		qa.Suggestion = invalidChoiceSuggestion
		qa.Explanation = noSelectionExplanation
		qa.Degraded = true

	case selected.IsCorrect:
		qa.Understanding = UnderstandingGood
		qa.Suggestion = fmt.Sprintf("Excellent understanding of %s. Consider exploring more advanced topics in this area.", q.Category)
		qa.Explanation = fmt.Sprintf("Correct! %s This demonstrates good understanding of %s.", q.Explanation, q.Category)

	default:
		var hit bool
		qa.Understanding = UnderstandingNeedsImprovement
		qa.Suggestion, hit = e.suggestion(q)
		qa.Explanation = e.incorrectExplanation(q, selected, q.CorrectOption())
		qa.Degraded = !hit
	}

	return qa
}

func (e *Explainer) suggestion(q *Question) (string, bool) {
	if s, ok := e.rules.Suggestion(q.Category, q.Tags); ok {
		return s, true
	}
	if len(q.Tags) == 0 {
		return fmt.Sprintf("Review %s fundamentals.", q.Category), false
	}
	return fmt.Sprintf("Review %s fundamentals, particularly regarding %s.", q.Category, strings.Join(q.Tags, ", ")), false
}

func (e *Explainer) incorrectExplanation(q *Question, selected, correct *Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The correct answer was: %q\n\n", correct.Text)
	b.WriteString(q.Explanation)
	fmt.Fprintf(&b, "\n\nYour answer %q is incorrect because:\n", selected.Text)
	b.WriteString(e.misconceptionExplanation(q, selected))
	b.WriteString("\n\nKey points to remember:\n")
	b.WriteString(e.keyPoints(q))
	return b.String()
}

func (e *Explainer) misconceptionExplanation(q *Question, selected *Option) string {
	if s, ok := e.rules.Explanation(q.Tags, selected.Text); ok {
		return s
	}
	msg := fmt.Sprintf("The answer you chose suggests a common misconception about %s.", q.Category)
	if len(q.Tags) > 0 {
		msg += fmt.Sprintf(" Review the fundamental concepts and pay attention to %s.", strings.Join(q.Tags, ", "))
	}
	return msg
}

func (e *Explainer) keyPoints(q *Question) string {
	points, ok := e.rules.KeyPointsFor(q.Category, q.Tags)
	if !ok {
		points = []string{
			fmt.Sprintf("Focus on understanding the core concepts of %s", q.Category),
			"Review the relationship between different components",
			"Practice similar questions to reinforce understanding",
		}
	}
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = "• " + p
	}
	return strings.Join(lines, "\n")
}

func practiceRecommendation(q *Question, isCorrect bool) PracticeRecommendation {
	if isCorrect {
		return PracticeRecommendation{
			NextDifficulty:   q.Difficulty.Next(),
			FocusAreas:       []string{fmt.Sprintf("Advanced %s concepts", q.Category), "Application-based questions"},
			RecommendedCount: correctPracticeCount,
		}
	}
	return PracticeRecommendation{
		NextDifficulty:   q.Difficulty,
		FocusAreas:       []string{fmt.Sprintf("%s fundamentals", q.Category), "Basic concept questions"},
		RecommendedCount: incorrectPracticeCount,
	}
}

// fallbackAnalysis uses only correctness, the base explanation and the
// category.
func fallbackAnalysis(q *Question, isCorrect bool, timeSpentSeconds float64) QuestionAnalysis {
	qa := QuestionAnalysis{
		QuestionID:       q.ID,
		Topic:            q.Category,
		Concept:          q.Text,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: timeSpentSeconds,
		Explanation:      q.Explanation,
		RelatedTopics:    []string{fmt.Sprintf("Basic %s", q.Category)},
		Practice: PracticeRecommendation{
			NextDifficulty:   q.Difficulty,
			FocusAreas:       []string{fmt.Sprintf("%s fundamentals", q.Category)},
			RecommendedCount: incorrectPracticeCount,
		},
		Fallback: true,
	}
	if isCorrect {
		qa.Understanding = UnderstandingGood
		qa.Suggestion = fmt.Sprintf("Good understanding of %s", q.Category)
		qa.Practice.RecommendedCount = correctPracticeCount
	} else {
		qa.Understanding = UnderstandingNeedsImprovement
		qa.Suggestion = fmt.Sprintf("Review the concepts related to %s", q.Category)
	}
	return qa
}
