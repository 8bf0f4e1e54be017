// Package savereport is the screen that asks where to write the PDF report.
package savereport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsupport/internal/report"
	"github.com/abhisek/soulsupport/internal/router"
	"github.com/abhisek/soulsupport/internal/screen"
	"github.com/abhisek/soulsupport/internal/store"
	"github.com/abhisek/soulsupport/internal/ui/components"
	"github.com/abhisek/soulsupport/internal/ui/layout"
	"github.com/abhisek/soulsupport/internal/ui/theme"
)

// SavedMsg is broadcast after a save attempt. The screen has already popped
// itself when it arrives.
type SavedMsg struct {
	Path string
	Err  error
}

// Saver writes the report. report.SaveFile in production.
type Saver func(path string, in report.Input) error

// SaveReportScreen lets the user confirm or edit the output path.
type SaveReportScreen struct {
	in        report.Input
	sessionID string
	eventRepo store.EventRepo
	save      Saver
	input     components.TextInput
	errMsg    string
}

var _ screen.Screen = (*SaveReportScreen)(nil)
var _ screen.KeyHintProvider = (*SaveReportScreen)(nil)

// New creates the screen with the path prefilled. eventRepo may be nil.
func New(in report.Input, defaultPath, sessionID string, eventRepo store.EventRepo) *SaveReportScreen {
	ti := components.NewTextInput("report.pdf", 0)
	ti.SetValue(defaultPath)
	return &SaveReportScreen{
		in:        in,
		sessionID: sessionID,
		eventRepo: eventRepo,
		save:      report.SaveFile,
		input:     ti,
	}
}

// WithSaver replaces the file writer.
func (s *SaveReportScreen) WithSaver(fn Saver) *SaveReportScreen {
	s.save = fn
	return s
}

func (s *SaveReportScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SaveReportScreen) Title() string {
	return "Save Report"
}

func (s *SaveReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *SaveReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SaveReportScreen) submit() tea.Cmd {
	path := normalize(s.input.Value())
	if path == "" {
		s.errMsg = "Please enter a file name"
		return nil
	}
	s.errMsg = ""
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		s.saveCmd(path),
	)
}

// saveCmd writes the report to path and records a report event on success.
func (s *SaveReportScreen) saveCmd(path string) tea.Cmd {
	in, sessionID, repo, save := s.in, s.sessionID, s.eventRepo, s.save
	return func() tea.Msg {
		err := save(path, in)
		if err == nil && repo != nil {
			data := store.ReportEventData{SessionID: sessionID, Path: path, Answers: len(in.Entries)}
			if logErr := repo.AppendReportEvent(context.Background(), data); logErr != nil {
				slog.Warn("failed to log report event", "err", logErr)
			}
		}
		if err != nil && !errors.Is(err, report.ErrNoData) {
			slog.Error("report save failed", "path", path, "err", err)
		}
		return SavedMsg{Path: path, Err: err}
	}
}

// normalize trims the path and adds the .pdf extension when missing.
func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		path += ".pdf"
	}
	return path
}

func (s *SaveReportScreen) View(width, height int) string {
	cw := min(width-4, 70)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(report.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(summary(s.in)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Align(lipgloss.Left).Render("Save as:"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Warning.Render(s.errMsg))
	}

	card := theme.FocusedCard.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func summary(in report.Input) string {
	if in.Complete {
		return fmt.Sprintf("Full assessment, score %d (%s)", in.Total, in.Band)
	}
	return fmt.Sprintf("%d answered question(s), score so far %d", len(in.Entries), in.Total)
}
