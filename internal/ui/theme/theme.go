package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: soft and low-contrast, nothing alarming except Alert.
var (
	Primary   = lipgloss.Color("#A78BFA") // Lavender
	Secondary = lipgloss.Color("#5EEAD4") // Seafoam
	Accent    = lipgloss.Color("#FBBF24") // Warm amber
	Success   = lipgloss.Color("#86EFAC") // Mint
	Alert     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#F1F5F9") // Off-white
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E1B2E") // Dusk
	Border    = lipgloss.Color("#3F3A56") // Muted violet
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Alert).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = Card.
			BorderForeground(Primary)
)

// Transcript senders
var (
	BotName = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	UserName = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	GuideName = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	GuideText = lipgloss.NewStyle().
			Foreground(Success).
			Italic(true)

	Typing = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Menu states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Components
var (
	BarEmpty = lipgloss.NewStyle().
		Foreground(Border)
)
