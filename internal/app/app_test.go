package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsupport/internal/router"
	"github.com/abhisek/soulsupport/internal/screens/history"
)

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestEscAtRootDoesNotPop(t *testing.T) {
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if d := updated.(AppModel).router.Depth(); d != 1 {
		t.Errorf("depth = %d, want 1", d)
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newAppModel(Options{})
	m.router.Push(history.New(nil, "report.pdf"))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestFooterHints(t *testing.T) {
	m := newAppModel(Options{})
	hints := m.footerHints(m.router.Active())
	if len(hints) == 0 || hints[0].Description != "Send" {
		t.Errorf("root hints = %+v, want the chat hints", hints)
	}

	m.router.Push(history.New(nil, "report.pdf"))
	hints = m.footerHints(m.router.Active())
	if hints[len(hints)-1].Description != "Back" {
		t.Errorf("history hints = %+v", hints)
	}
}

func TestWindowSizeReachesScreens(t *testing.T) {
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	am := updated.(AppModel)
	if am.width != 120 || am.height != 40 {
		t.Errorf("size = %dx%d", am.width, am.height)
	}
	if out := am.router.View(120, 30); !strings.Contains(out, "Start Diagnosis") {
		t.Error("wide chat should show the action menu")
	}
}

func TestSplashHandsOverToChat(t *testing.T) {
	m := newAppModel(Options{Splash: true})
	if title := m.router.Active().Title(); title != "" {
		t.Fatalf("splash should be the root screen, got %q", title)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)

	_, cmd := m.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should leave the splash")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}

	updated, _ = m.Update(replace)
	m = updated.(AppModel)
	if d := m.router.Depth(); d != 1 {
		t.Errorf("depth = %d, want 1", d)
	}
	if out := m.router.View(100, 26); !strings.Contains(out, "Start Diagnosis") {
		t.Error("chat should be active after the splash")
	}
}
