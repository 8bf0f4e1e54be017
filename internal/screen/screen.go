// Package screen defines what the router needs from a full-screen view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsupport/internal/ui/layout"
)

// Screen is one entry on the router stack. Update returns the screen to
// keep, which may be a modified copy of the receiver.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body; the app draws the header and footer around it.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies a short status for the right of the header.
type StatusProvider interface {
	Status() string
}
