package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsupport/internal/conversation"
	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/report"
	"github.com/abhisek/soulsupport/internal/ui/components"
	"github.com/abhisek/soulsupport/internal/ui/theme"
)

const menuWidth = 26

func (c *ChatScreen) View(width, height int) string {
	showMenu := !c.compact || c.focus == focusMenu
	mainWidth := width
	if showMenu && !c.compact {
		mainWidth = width - menuWidth - 1
	}

	input := theme.Card.Width(mainWidth).Render(c.input.View())
	if c.focus == focusInput {
		input = theme.FocusedCard.Width(mainWidth).Render(c.input.View())
	}

	var chart string
	if c.result != nil {
		chart = c.renderChart(mainWidth)
	}

	panelHeight := max(height-lipgloss.Height(input)-lipgloss.Height(chart), 3)
	panel := c.renderTranscript(mainWidth, panelHeight)

	parts := []string{panel}
	if chart != "" {
		parts = append(parts, chart)
	}
	parts = append(parts, input)
	main := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if !showMenu {
		return main
	}
	menu := c.renderMenu(height)
	if c.compact {
		return lipgloss.JoinVertical(lipgloss.Left, menu, input)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", menu)
}

// renderTranscript draws the bottom of the transcript that fits in height,
// offset by the scroll position.
func (c *ChatScreen) renderTranscript(width, height int) string {
	inner := max(width-4, 10)
	rows := max(height-2, 1)

	var lines []string
	for _, m := range c.transcript.Messages() {
		lines = append(lines, strings.Split(renderMessage(m, inner), "\n")...)
		lines = append(lines, "")
	}

	end := len(lines)
	maxScroll := max(end-rows, 0)
	c.scroll = min(c.scroll, maxScroll)
	end -= c.scroll
	start := max(end-rows, 0)

	return theme.Card.
		Width(width).
		Height(rows + 2).
		Render(strings.Join(lines[start:end], "\n"))
}

func renderMessage(m conversation.Message, width int) string {
	if m.Typing {
		return theme.Typing.Render(conversation.TypingText)
	}

	var name, body string
	switch m.Sender {
	case conversation.SenderUser:
		name = theme.UserName.Render(string(m.Sender) + ":")
		body = theme.Body.Render(m.Text)
	case conversation.SenderGuide:
		name = theme.GuideName.Render(string(m.Sender) + ":")
		body = theme.GuideText.Render(m.Text)
	default:
		name = theme.BotName.Render(string(m.Sender) + ":")
		body = theme.Body.Render(m.Text)
	}
	return lipgloss.NewStyle().Width(width).Render(name + " " + body)
}

func (c *ChatScreen) renderChart(width int) string {
	qs := diagnosis.Questions()
	bars := make([]components.Bar, 0, len(c.result.Answers))
	for i, a := range c.result.Answers {
		if i >= len(qs) {
			break
		}
		bars = append(bars, components.Bar{
			Label: string(qs[i].Category),
			Value: a,
			Color: report.Palette[i%len(report.Palette)],
		})
	}
	chart := components.BarChart{
		Title: report.ChartTitle,
		Bars:  bars,
		Max:   diagnosis.MaxAnswer,
		Width: width - 4,
	}
	return theme.Card.Width(width).Render(chart.View())
}

func (c *ChatScreen) renderMenu(height int) string {
	style := theme.Card
	if c.focus == focusMenu {
		style = theme.FocusedCard
	}
	title := theme.Subtitle.Render("Actions")
	return style.Width(menuWidth).MaxHeight(height).Render(title + "\n" + c.menu.View())
}
