package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// accuracyBar renders label, a bar filled to percent (0-100) and the value.
func accuracyBar(label string, labelWidth int, percent float64, width int) string {
	head := bodyStyle.Render(label) + strings.Repeat(" ", max(labelWidth-lipgloss.Width(label), 0)+2)

	barWidth := max(width-lipgloss.Width(head)-6, 4)
	filled := min(max(int(float64(barWidth)*percent/100), 0), barWidth)

	return head +
		barFilled.Render(strings.Repeat(" ", filled)) +
		barEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		dimStyle.Render(fmt.Sprintf("  %3.0f%%", percent))
}
