package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsupport/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Action runs on Enter.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical action menu. It only reacts to keys while Focused.
type Menu struct {
	Items    []MenuItem
	Selected int
	Focused  bool
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index from i in direction dir, or -1.
func (m Menu) step(i, dir int) int {
	for i += dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "home":
		if i := m.step(-1, 1); i >= 0 {
			m.Selected = i
		}
	case "end":
		if i := m.step(len(m.Items), -1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// View renders the menu, one item per line.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			s += theme.Disabled.Render("  "+item.Label) + "\n"
		case i == m.Selected && m.Focused:
			s += theme.Selected.Render("▸ "+item.Label) + "\n"
		default:
			s += theme.Unselected.Render("  "+item.Label) + "\n"
		}
	}
	return s
}
