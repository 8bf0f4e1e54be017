package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func TestMenuSkipsDisabledAndRunsAction(t *testing.T) {
	ran := ""
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd { ran = name; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "First", Action: action("first")},
		{Label: "Off too", Disabled: true},
		{Label: "Second", Action: action("second")},
	})
	m.Focused = true

	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("down at end moved to %d", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "second" {
		t.Fatalf("ran = %q, want second", ran)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	if m.Selected != 1 {
		t.Fatalf("after k = %d, want 1", m.Selected)
	}
}

func TestMenuIgnoresKeysWhenUnfocused(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A"}, {Label: "B"}})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Fatalf("unfocused menu moved to %d", m.Selected)
	}
	if !strings.Contains(m.View(), "A") {
		t.Fatal("view missing label")
	}
}

func TestBarChartView(t *testing.T) {
	c := BarChart{
		Title: "Levels",
		Bars: []Bar{
			{Label: "Sadness", Value: 5, Color: "#FF6B6B"},
			{Label: "Sleep", Value: 0, Color: "#4ECDC4"},
			{Label: "Huge", Value: 9, Color: "#45B7D1"},
		},
		Max:   5,
		Width: 40,
	}
	out := c.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want title + 3 bars:\n%s", len(lines), out)
	}
	for _, l := range lines[1:] {
		if w := lipgloss.Width(l); w > 40 {
			t.Errorf("line too wide (%d): %q", w, l)
		}
	}
	if strings.Contains(lines[2], "█") {
		t.Errorf("zero bar should be empty: %q", lines[2])
	}
	if strings.Contains(lines[3], "░") {
		t.Errorf("over-max bar should be clamped full: %q", lines[3])
	}
}

func TestBarChartEmpty(t *testing.T) {
	if (BarChart{Max: 5}).View() != "" {
		t.Fatal("expected empty view without bars")
	}
}
