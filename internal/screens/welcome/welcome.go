// Package welcome renders the breathing splash shown before the chat opens.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soulsupport/internal/router"
	"github.com/abhisek/soulsupport/internal/screen"
	"github.com/abhisek/soulsupport/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 800 * time.Millisecond
	totalDur     = 3 * time.Second

	// breathPeriod is one full inhale and exhale of the lotus.
	breathPeriod = 2 * time.Second
)

// lotusFrames grow from a bud to a full bloom.
var lotusFrames = []string{
	`
      .
     (@)
   ~~~~~~~`,
	`
     \ /
    (@@@)
   ~~~~~~~`,
	`
    \ | /
   (@@@@@)
  ~~~~~~~~~`,
	`
   \ \|/ /
  (@@@@@@@)
 ~~~~~~~~~~~`,
}

type tickMsg time.Time

// WelcomeScreen breathes a lotus for a few seconds, then replaces itself
// with the screen produced by next. Any key skips the animation.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen next builds.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// frame picks the lotus frame for the current point of the breath cycle:
// opening on the inhale, closing on the exhale.
func (w *WelcomeScreen) frame() int {
	phase := w.elapsed % breathPeriod
	half := breathPeriod / 2
	n := len(lotusFrames) - 1
	if phase < half {
		return int(phase * time.Duration(n) / half)
	}
	return n - int((phase-half)*time.Duration(n)/half)
}

// breathCue names the current half of the breath cycle.
func (w *WelcomeScreen) breathCue() string {
	if w.elapsed%breathPeriod < breathPeriod/2 {
		return "breathe in..."
	}
	return "breathe out..."
}

func (w *WelcomeScreen) View(width, height int) string {
	lotus := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Trim(lotusFrames[w.frame()], "\n"))
	cue := lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render(w.breathCue())

	sections := []string{lotus, "", cue}

	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline)
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
