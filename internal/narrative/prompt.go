package narrative

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizsense/internal/feedback"
)

const systemPrompt = `You are an expert tutor providing personalized, encouraging feedback on a student's quiz performance.`

func buildUserMessage(req Request) string {
	var b strings.Builder

	s := req.Stats
	b.WriteString("Quiz Performance:\n")
	fmt.Fprintf(&b, "- Accuracy: %s%%\n", feedback.FormatPercent(s.AccuracyPercent))
	fmt.Fprintf(&b, "- Total Questions: %d\n", s.TotalQuestions)
	fmt.Fprintf(&b, "- Correct Answers: %d\n", s.CorrectAnswers)
	fmt.Fprintf(&b, "- Average Time per Question: %.1f seconds\n", s.AverageTimePerQuestion)

	if len(req.Categories) > 0 {
		b.WriteString("\nCategory Performance:\n")
		for _, c := range req.Categories {
			fmt.Fprintf(&b, "- %s: %s%% (%d/%d)\n", c.Name, feedback.FormatPercent(c.Accuracy), c.Correct, c.Total)
		}
	}

	if len(req.Questions) > 0 {
		b.WriteString("\nQuestions Performance:\n")
		for i, q := range req.Questions {
			fmt.Fprintf(&b, "%d. Category: %s", i+1, q.Category)
			if q.Difficulty != "" {
				fmt.Fprintf(&b, ", Difficulty: %s", q.Difficulty)
			}
			fmt.Fprintf(&b, ", Correct: %t, Time Taken: %.1f seconds\n", q.IsCorrect, q.TimeSpentSeconds)
		}
	}

	if h := req.History; h != nil {
		b.WriteString("\nUser History:\n")
		fmt.Fprintf(&b, "- Total Quizzes Taken: %d\n", h.TotalQuizzesTaken)
		fmt.Fprintf(&b, "- Average Accuracy: %s%%\n", feedback.FormatPercent(h.AverageAccuracy))
		weak := "None"
		if len(h.WeakAreas) > 0 {
			weak = strings.Join(h.WeakAreas, ", ")
		}
		fmt.Fprintf(&b, "- Weak Areas: %s\n", weak)
	}

	b.WriteString(`
Instructions:
Please provide:
1. A short analysis of the performance
2. Specific strengths
3. Areas for improvement
4. Study recommendations
5. Time management advice if needed, otherwise an empty string

Address the student directly. Keep each list entry to one sentence.`)

	return b.String()
}
