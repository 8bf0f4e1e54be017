// Package history lists stored assessments and re-exports their reports.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/report"
	"github.com/abhisek/soulsupport/internal/router"
	"github.com/abhisek/soulsupport/internal/screen"
	"github.com/abhisek/soulsupport/internal/screens/savereport"
	"github.com/abhisek/soulsupport/internal/store"
	"github.com/abhisek/soulsupport/internal/ui/layout"
	"github.com/abhisek/soulsupport/internal/ui/theme"
)

// Limit caps how many assessments the screen loads.
const Limit = 50

type loadedMsg struct {
	recs []store.AssessmentRecord
	err  error
}

// HistoryScreen lists past assessments, newest first. Enter folds out the
// per-question answers; r exports the selected one as a PDF.
type HistoryScreen struct {
	repo       store.EventRepo
	reportPath string

	recs     []store.AssessmentRecord
	cursor   int
	open     map[int]bool
	loaded   bool
	loadErr  error
	notice   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the screen. reportPath prefills the export dialog.
func New(repo store.EventRepo, reportPath string) *HistoryScreen {
	return &HistoryScreen{
		repo:       repo,
		reportPath: reportPath,
		open:       make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return loadedMsg{}
		}
		recs, err := repo.QueryAssessments(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{recs: recs, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Answers"},
		{Key: "r", Description: "Export report"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.recs, s.loadErr, s.loaded = msg.recs, msg.err, true

	case savereport.SavedMsg:
		if msg.Err != nil {
			s.notice = fmt.Sprintf("Export failed: %v", msg.Err)
		} else {
			s.notice = "Saved " + msg.Path
		}

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = max(min(s.cursor+1, len(s.recs)-1), 0)
	case "enter":
		s.open[s.cursor] = !s.open[s.cursor]
	case "r":
		return s.export()
	}
	return nil
}

// export pushes the save dialog for the selected assessment.
func (s *HistoryScreen) export() tea.Cmd {
	if s.cursor >= len(s.recs) {
		return nil
	}
	rec := s.recs[s.cursor]
	in, err := report.FromAnswers(rec.Answers, rec.Timestamp)
	if err != nil {
		s.notice = fmt.Sprintf("Export failed: %v", err)
		return nil
	}
	dlg := savereport.New(in, s.reportPath, rec.SessionID, s.repo)
	return func() tea.Msg { return router.PushScreenMsg{Screen: dlg} }
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.loadErr != nil:
		return centered.Foreground(theme.Alert).Render("\n\nError: " + s.loadErr.Error())
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.recs) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo assessments yet. Start a diagnosis from the chat!")
	}

	qs := diagnosis.Questions()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	row := func(b *strings.Builder, text string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
		b.WriteByte('\n')
	}

	var b strings.Builder
	b.WriteByte('\n')
	for i, rec := range s.recs {
		marker := "  "
		if i == s.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s#%d  %s  %2d/%d  %s", marker, rec.ID,
			rec.Timestamp.Local().Format("Jan 02, 2006 15:04"), rec.Total, diagnosis.MaxScore(), rec.Band)
		if !rec.Complete {
			line += fmt.Sprintf("  partial (%d/%d)", len(rec.Answers), len(qs))
		}

		style := lipgloss.NewStyle().Foreground(bandColor(diagnosis.Band(rec.Band))).Bold(i == s.cursor)
		row(&b, style.Render(line))

		if !s.open[i] {
			continue
		}
		for j, ans := range rec.Answers {
			if j >= len(qs) {
				break
			}
			row(&b, dim.Render(fmt.Sprintf("    %-14s %d", qs[j].Category, ans)))
		}
	}
	if s.notice != "" {
		b.WriteByte('\n')
		row(&b, dim.Render(s.notice))
	}
	return b.String()
}

func bandColor(b diagnosis.Band) color.Color {
	switch b {
	case diagnosis.BandMild:
		return theme.Success
	case diagnosis.BandModerate:
		return theme.Accent
	case diagnosis.BandSevere:
		return theme.Alert
	}
	return theme.Text
}
