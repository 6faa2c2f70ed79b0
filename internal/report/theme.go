package report

import "charm.land/lipgloss/v2"

var (
	primary   = lipgloss.Color("#8B5CF6")
	secondary = lipgloss.Color("#14B8A6")
	accent    = lipgloss.Color("#F97316")
	success   = lipgloss.Color("#22C55E")
	failure   = lipgloss.Color("#F43F5E")
	text      = lipgloss.Color("#F8FAFC")
	textDim   = lipgloss.Color("#94A3B8")
	border    = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondary).
			MarginTop(1)

	bodyStyle = lipgloss.NewStyle().
			Foreground(text)

	dimStyle = lipgloss.NewStyle().
			Foreground(textDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(textDim).
			Italic(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(success).
			Bold(true)

	incorrectStyle = lipgloss.NewStyle().
			Foreground(failure).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2)

	barFilled = lipgloss.NewStyle().Background(secondary)
	barEmpty  = lipgloss.NewStyle().Background(border)
)

// levelColors maps performance levels to badge colors, best first.
var levelColors = map[string]lipgloss.Style{
	"excellent":         lipgloss.NewStyle().Foreground(success).Bold(true),
	"very_good":         lipgloss.NewStyle().Foreground(secondary).Bold(true),
	"good":              lipgloss.NewStyle().Foreground(primary).Bold(true),
	"fair":              lipgloss.NewStyle().Foreground(accent).Bold(true),
	"needs_improvement": lipgloss.NewStyle().Foreground(failure).Bold(true),
}
