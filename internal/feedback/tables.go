package feedback

import "github.com/abhisek/quizsense/internal/analysis"

// levelPlan is the static feedback content for one performance level.
type levelPlan struct {
	qualifier       string
	recommendations [3]string
	action          string
	topics          [3]string
	practiceCount   int
}

// defaultPlans returns the per-level feedback tables. Practice counts grow
// as performance drops.
func defaultPlans() map[analysis.PerformanceLevel]levelPlan {
	return map[analysis.PerformanceLevel]levelPlan{
		analysis.LevelExcellent: {
			qualifier: "Outstanding!",
			recommendations: [3]string{
				"Challenge yourself with more advanced topics",
				"Try questions with shorter time limits",
				"Help others understand difficult concepts",
			},
			action:        "Advance to next level",
			topics:        [3]string{"Advanced concepts", "Complex problem-solving", "Teaching others"},
			practiceCount: 5,
		},
		analysis.LevelVeryGood: {
			qualifier: "Great work!",
			recommendations: [3]string{
				"Focus on the few questions you missed",
				"Practice more complex scenarios",
				"Review advanced concepts",
			},
			action:        "Reinforce and advance",
			topics:        [3]string{"Missed concepts", "Advanced applications", "Time management"},
			practiceCount: 7,
		},
		analysis.LevelGood: {
			qualifier: "Good job!",
			recommendations: [3]string{
				"Review the questions you missed",
				"Practice similar questions more",
				"Focus on understanding core concepts",
			},
			action:        "Practice and improve",
			topics:        [3]string{"Core concepts", "Problem areas", "Timed practice"},
			practiceCount: 10,
		},
		analysis.LevelFair: {
			qualifier: "You're making progress.",
			recommendations: [3]string{
				"Focus on basic concepts first",
				"Take more practice quizzes",
				"Spend more time on each question",
			},
			action:        "Review and practice",
			topics:        [3]string{"Basic concepts", "Fundamental principles", "Practice exercises"},
			practiceCount: 12,
		},
		analysis.LevelNeedsImprovement: {
			qualifier: "Keep practicing!",
			recommendations: [3]string{
				"Review fundamental concepts",
				"Start with easier questions",
				"Consider using additional study resources",
			},
			action:        "Focus on basics",
			topics:        [3]string{"Foundational concepts", "Basic principles", "Simple exercises"},
			practiceCount: 15,
		},
	}
}

// Generic content used when no per-level plan applies.
var (
	fallbackQualifier       = "You're making progress."
	fallbackRecommendations = [3]string{
		"Continue practicing regularly",
		"Review incorrect answers",
		"Focus on understanding core concepts",
	}
	fallbackTopics = [3]string{"Review basics", "Core concepts", "Practice exercises"}
)

const (
	fallbackAction        = "Practice more"
	fallbackPracticeCount = 10
)
