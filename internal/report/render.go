// Package report renders evaluation reports for the terminal and as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/abhisek/quizsense/internal/engine"
	"github.com/abhisek/quizsense/internal/feedback"
)

// DefaultWidth is the render width when the caller has none.
const DefaultWidth = 80

// Options controls terminal rendering.
type Options struct {
	Width int

	// Questions includes the per-question analyses.
	Questions bool

	// Plain strips colors and styles.
	Plain bool
}

// Write renders r to w, downsampling colors to what w supports.
func Write(w io.Writer, r *engine.Report, opts Options) error {
	cw := colorprofile.NewWriter(w, os.Environ())
	if opts.Plain {
		cw.Profile = colorprofile.NoTTY
	}
	_, err := io.WriteString(cw, Render(r, opts)+"\n")
	return err
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Render returns the styled report.
func Render(r *engine.Report, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	inner := width - 6

	var sections []string

	title := titleStyle.Render("Quiz Report")
	if r.QuizID != "" {
		title += dimStyle.Render("  " + r.QuizID)
	}
	sections = append(sections, title, dimStyle.Render("attempt "+r.AttemptID))

	sections = append(sections, renderScore(r))
	sections = append(sections, renderPattern(r))

	if len(r.Categories) > 0 {
		sections = append(sections, renderCategories(r, inner))
	}

	sections = append(sections, renderFeedback(r, inner))

	if opts.Questions && len(r.Questions) > 0 {
		sections = append(sections, renderQuestions(r, inner))
	}

	sections = append(sections, renderNarrative(r, inner))

	return cardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderScore(r *engine.Report) string {
	level, ok := levelColors[string(r.Level)]
	if !ok {
		level = bodyStyle
	}
	s := r.Stats
	lines := []string{
		headingStyle.Render("Score"),
		level.Render(strings.ToUpper(strings.ReplaceAll(string(r.Level), "_", " "))) + "  " +
			bodyStyle.Render(r.Feedback.Performance.Message),
		dimStyle.Render(fmt.Sprintf("%d/%d correct · %s%% accuracy · %.1fs total · %.1fs per question",
			s.CorrectAnswers, s.TotalQuestions, feedback.FormatPercent(s.AccuracyPercent),
			s.TotalTimeSeconds, s.AverageTimePerQuestion)),
	}
	return strings.Join(lines, "\n")
}

func renderPattern(r *engine.Report) string {
	p := r.Pattern
	return headingStyle.Render("Pattern") + "\n" +
		bodyStyle.Render(fmt.Sprintf("Trend: %s · Consistency: %s", p.Trend, p.Consistency)) + "\n" +
		dimStyle.Render(fmt.Sprintf("Longest correct streak %d · longest incorrect streak %d",
			p.LongestCorrectStreak, p.LongestIncorrectStreak))
}

func renderCategories(r *engine.Report, width int) string {
	labelWidth := 0
	for _, c := range r.Categories {
		labelWidth = max(labelWidth, lipgloss.Width(c.Name))
	}

	lines := []string{headingStyle.Render("Categories")}
	for _, c := range r.Categories {
		lines = append(lines, accuracyBar(c.Name, labelWidth, c.Accuracy, width))
	}
	if len(r.Strengths) > 0 {
		lines = append(lines, correctStyle.Render("Strengths: ")+bodyStyle.Render(strings.Join(r.Strengths, ", ")))
	}
	if len(r.Weaknesses) > 0 {
		lines = append(lines, incorrectStyle.Render("Weaknesses: ")+bodyStyle.Render(strings.Join(r.Weaknesses, ", ")))
	}
	return strings.Join(lines, "\n")
}

func renderFeedback(r *engine.Report, width int) string {
	lines := []string{headingStyle.Render("Recommendations")}
	wrap := bodyStyle.Width(width)
	for _, rec := range r.Feedback.Recommendations {
		lines = append(lines, wrap.Render("• "+rec))
	}
	ns := r.Feedback.NextSteps
	lines = append(lines,
		headingStyle.Render("Next steps"),
		bodyStyle.Render(fmt.Sprintf("%s: %d questions", ns.Action, ns.PracticeCount)),
		dimStyle.Render("Topics: "+strings.Join(ns.SuggestedTopics, ", ")),
	)
	return strings.Join(lines, "\n")
}

func renderQuestions(r *engine.Report, width int) string {
	lines := []string{headingStyle.Render("Questions")}
	wrap := bodyStyle.Width(width - 3).MarginLeft(3)
	for i, qa := range r.Questions {
		mark := incorrectStyle.Render("✗")
		if qa.IsCorrect {
			mark = correctStyle.Render("✓")
		}
		head := fmt.Sprintf("%d. %s %s", i+1, mark, bodyStyle.Render(qa.Topic))
		if qa.Concept != "" {
			head += dimStyle.Render(" · " + qa.Concept)
		}
		lines = append(lines, head, wrap.Render(qa.Suggestion))
		if qa.Explanation != "" {
			lines = append(lines, dimStyle.Width(width-3).MarginLeft(3).Render(qa.Explanation))
		}
		if len(qa.RelatedTopics) > 0 {
			lines = append(lines, hintStyle.MarginLeft(3).Render("Related: "+strings.Join(qa.RelatedTopics, ", ")))
		}
	}
	return strings.Join(lines, "\n")
}

func renderNarrative(r *engine.Report, width int) string {
	heading := "Feedback"
	if r.NarrativeSource == engine.SourceLocal {
		heading += dimStyle.Render(" (local)")
	}
	return headingStyle.Render(heading) + "\n" + bodyStyle.Width(width).Render(r.Narrative)
}
