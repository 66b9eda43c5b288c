package ui

import (
	"testing"

	"github.com/atomicstack/popup-launcher/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleEscapeKeyFromRootQuits(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	cmd := m.handleEscapeKey()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", msg)
	}
	if m.ExitReason() != ExitDismissed {
		t.Fatalf("expected dismissed exit, got %q", m.ExitReason())
	}
}

func TestHandleEscapeKeyPopsLevelAndRestoresCursor(t *testing.T) {
	cfg := launcherConfig()
	cfg.Categories = []menu.Category{{Name: "Other", Icon: ""}, {Name: "Apps", Icon: ""}}
	m, _ := newTestModel(cfg, 0, 0)
	root := m.currentLevel()
	root.Cursor = root.IndexOf(menu.CategoryNodeID("Apps"))
	m.handleEnterKey()
	m.errMsg = "previous error"

	cmd := m.handleEscapeKey()
	if cmd != nil {
		t.Fatalf("expected no command when popping a level")
	}
	if len(m.stack) != 1 {
		t.Fatalf("expected stack to shrink to 1, got %d", len(m.stack))
	}
	if !m.menu.View().IsRoot() {
		t.Fatalf("expected state back at root")
	}
	if m.currentLevel().Cursor != 1 {
		t.Fatalf("expected parent cursor restored to 1, got %d", m.currentLevel().Cursor)
	}
	if m.currentLevel().LastCursor != -1 {
		t.Fatalf("expected parent LastCursor reset, got %d", m.currentLevel().LastCursor)
	}
	if m.errMsg != "" {
		t.Fatalf("expected error message cleared, got %q", m.errMsg)
	}
	if m.ExitReason() != "" {
		t.Fatalf("popping a level must not quit")
	}
}

func TestEnterOnFilteredCategoryClearsRootFilter(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("app")})
	root := m.currentLevel()
	if root.Filter != "app" || len(root.Items) != 1 {
		t.Fatalf("expected filtered root, got %q %#v", root.Filter, root.Items)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.stack) != 2 {
		t.Fatalf("expected Apps sub-menu")
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	root = m.currentLevel()
	if root.Filter != "" || len(root.Items) != 4 {
		t.Fatalf("expected unfiltered root after back, got %q %#v", root.Filter, root.Items)
	}
}

func TestArrowKeysMoveCursor(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.currentLevel().Cursor; got != 2 {
		t.Fatalf("expected cursor 2, got %d", got)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.currentLevel().Cursor; got != 1 {
		t.Fatalf("expected cursor 1, got %d", got)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnd})
	if got := m.currentLevel().Cursor; got != 3 {
		t.Fatalf("expected cursor 3, got %d", got)
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyHome})
	if got := m.currentLevel().Cursor; got != 0 {
		t.Fatalf("expected cursor 0, got %d", got)
	}
}

func TestEnterOnUnnamedCategoryKeepsSingleLevel(t *testing.T) {
	cfg := &menu.Config{
		Categories: []menu.Category{{Name: "", Icon: ""}},
		Buttons:    []menu.Button{{Name: "Term", Icon: "", Command: "kitty"}},
	}
	model, dispatcher := newTestModel(cfg, 60, 12)
	harness := NewHarness(model)
	for i := 0; i < 3; i++ {
		harness.Send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	m := harness.Model()
	if len(m.stack) != 1 || !m.menu.View().IsRoot() {
		t.Fatalf("expected a single root level, got depth %d view %#v", len(m.stack), m.menu.View())
	}
	if m.errMsg == "" {
		t.Fatalf("expected the failed navigation to be reported")
	}
	if len(dispatcher.commands) != 0 {
		t.Fatalf("navigation must not dispatch, got %v", dispatcher.commands)
	}
	harness.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !harness.Quit() || m.ExitReason() != ExitDismissed {
		t.Fatalf("expected esc at root to close the popup")
	}
}
