package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsupport/internal/ui/theme"
)

// Bar is one labelled value of a BarChart.
type Bar struct {
	Label string
	Value int
	Color string // hex colour
}

// BarChart draws horizontal bars scaled against Max.
type BarChart struct {
	Title string
	Bars  []Bar
	Max   int
	Width int
}

// View renders the chart. Bars are padded to a common label width and the
// value is printed after each bar.
func (c BarChart) View() string {
	if len(c.Bars) == 0 || c.Max <= 0 {
		return ""
	}

	labelWidth := 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}
	valueWidth := len(fmt.Sprint(c.Max)) + 1
	barWidth := max(c.Width-labelWidth-valueWidth-2, 4)

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(theme.Title.Render(c.Title))
		sb.WriteString("\n")
	}
	for _, b := range c.Bars {
		v := min(max(b.Value, 0), c.Max)
		filled := barWidth * v / c.Max

		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		sb.WriteString(theme.Body.Render(label))
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(strings.Repeat("█", filled)))
		sb.WriteString(theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled)))
		sb.WriteString(theme.Hint.Render(fmt.Sprintf(" %*d", valueWidth-1, b.Value)))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
