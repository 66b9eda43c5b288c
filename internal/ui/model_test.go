package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/atomicstack/popup-launcher/internal/menu"
	"github.com/atomicstack/popup-launcher/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type recordingDispatcher struct {
	commands []string
	err      error
}

func (r *recordingDispatcher) Execute(command string) error {
	r.commands = append(r.commands, command)
	return r.err
}

func launcherConfig() *menu.Config {
	return &menu.Config{
		Categories: []menu.Category{
			{Name: "Apps", Icon: "\uf07b", Description: "Applications"},
			{Name: "Empty", Icon: ""},
		},
		Buttons: []menu.Button{
			{Name: "Vim", Icon: "\ue62b", Command: "vim", Category: "Apps", Description: "Text editor"},
			{Name: "Browser", Icon: "/usr/share/icons/browser.svg", Command: "firefox", Category: "Apps"},
			{Name: "Files", Icon: "\uf07c", Command: "nautilus"},
			{Name: "Term", Icon: "\uf120", Command: "kitty"},
		},
	}
}

func newTestModel(cfg *menu.Config, width, height int) (*Model, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	m := NewModel(Options{
		State:      menu.NewState(cfg, nil),
		Dispatcher: dispatcher,
		Width:      width,
		Height:     height,
		Mouse:      true,
	})
	return m, dispatcher
}

func TestNewModelStartsAtRoot(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	if len(m.stack) != 1 {
		t.Fatalf("expected a single level, got %d", len(m.stack))
	}
	root := m.currentLevel()
	if root.ID() != menu.RootID {
		t.Fatalf("expected root level, got %q", root.ID())
	}
	want := []string{"Apps", "Empty", "Files", "Term"}
	if len(root.Items) != len(want) {
		t.Fatalf("expected %d root items, got %#v", len(want), root.Items)
	}
	for i, label := range want {
		if root.Items[i].Label != label {
			t.Fatalf("item %d: expected %q, got %q", i, label, root.Items[i].Label)
		}
	}
	if root.Cursor != 0 {
		t.Fatalf("expected cursor on the first row, got %d", root.Cursor)
	}
}

func TestNewModelWithoutStateIsUsable(t *testing.T) {
	m := NewModel(Options{})
	if m.currentLevel() == nil || len(m.currentLevel().Items) != 0 {
		t.Fatalf("expected an empty root level")
	}
	if cmd := m.handleEnterKey(); cmd != nil {
		t.Fatalf("expected enter on an empty menu to be ignored")
	}
}

func TestMenuHeaderRootLevel(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	if got := m.menuHeader(); got != defaultRootTitle {
		t.Fatalf("expected %q, got %q", defaultRootTitle, got)
	}
}

func TestMenuHeaderCategoryLevel(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	m.handleEnterKey()
	if got, want := m.menuHeader(), "main menu→Apps"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEnterCategoryPushesLevel(t *testing.T) {
	m, dispatcher := newTestModel(launcherConfig(), 0, 0)
	if cmd := m.handleEnterKey(); cmd != nil {
		t.Fatalf("expected no command for navigation")
	}
	if len(m.stack) != 2 {
		t.Fatalf("expected sub-menu level, got %d levels", len(m.stack))
	}
	if m.menu.View().Category != "Apps" {
		t.Fatalf("expected state in Apps, got %#v", m.menu.View())
	}
	sub := m.currentLevel()
	if sub.ID() != menu.CategoryNodeID("Apps") {
		t.Fatalf("unexpected level id %q", sub.ID())
	}
	if len(sub.Items) != 3 || sub.Items[0].Kind != menu.KindBack || sub.Items[1].Label != "Vim" {
		t.Fatalf("unexpected sub-menu items %#v", sub.Items)
	}
	if len(dispatcher.commands) != 0 {
		t.Fatalf("navigation must not dispatch, got %v", dispatcher.commands)
	}
}

func TestEmptyCategoryShowsInfo(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	m.currentLevel().Cursor = 1
	m.handleEnterKey()
	sub := m.currentLevel()
	if len(sub.Items) != 1 || sub.Items[0].Kind != menu.KindBack {
		t.Fatalf("expected only a back entry, got %#v", sub.Items)
	}
	if m.currentInfo() == "" {
		t.Fatalf("expected an info message for an empty category")
	}
}

func TestBackEntryRestoresRootCursor(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	before := append([]menu.Item(nil), m.currentLevel().Items...)
	m.handleEnterKey()
	m.currentLevel().Cursor = 0
	m.handleEnterKey()
	if len(m.stack) != 1 || !m.menu.View().IsRoot() {
		t.Fatalf("expected root after back entry")
	}
	root := m.currentLevel()
	if root.Cursor != 0 {
		t.Fatalf("expected cursor back on Apps, got %d", root.Cursor)
	}
	if len(root.Items) != len(before) {
		t.Fatalf("expected identical root items, got %#v", root.Items)
	}
	for i := range before {
		if before[i] != root.Items[i] {
			t.Fatalf("root item %d changed: %#v != %#v", i, before[i], root.Items[i])
		}
	}
}

func TestEnterLeafDispatchesAndQuits(t *testing.T) {
	m, dispatcher := newTestModel(launcherConfig(), 0, 0)
	m.currentLevel().Cursor = 3
	cmd := m.handleEnterKey()
	if cmd == nil {
		t.Fatalf("expected dispatch command")
	}
	if !m.loading || m.pendingLabel != "Term" {
		t.Fatalf("expected pending launch of Term, got %v %q", m.loading, m.pendingLabel)
	}
	msg := cmd()
	result, ok := msg.(command.Result)
	if !ok {
		t.Fatalf("expected command.Result, got %T", msg)
	}
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(dispatcher.commands) != 1 || dispatcher.commands[0] != "kitty" {
		t.Fatalf("expected kitty dispatched, got %v", dispatcher.commands)
	}
	quit := m.handleActionResultMsg(result)
	if quit == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.ExitReason() != ExitLaunched {
		t.Fatalf("expected exit reason %q, got %q", ExitLaunched, m.ExitReason())
	}
	if !m.menu.View().IsRoot() {
		t.Fatalf("leaf activation must not change the menu state")
	}
}

func TestDispatchFailureStillQuits(t *testing.T) {
	m, dispatcher := newTestModel(launcherConfig(), 0, 0)
	dispatcher.err = errors.New("boom")
	m.currentLevel().Cursor = 2
	msg := m.handleEnterKey()()
	result := msg.(command.Result)
	if result.Err == nil {
		t.Fatalf("expected dispatch error")
	}
	cmd := m.handleActionResultMsg(result)
	if cmd == nil {
		t.Fatalf("expected quit even on failure")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.errMsg != "boom" {
		t.Fatalf("expected error recorded, got %q", m.errMsg)
	}
}

func TestEnterIgnoredWhileLaunching(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	m.loading = true
	if cmd := m.handleEnterKey(); cmd != nil {
		t.Fatalf("expected enter to be ignored while a launch is pending")
	}
	if len(m.stack) != 1 {
		t.Fatalf("expected no navigation while launching")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 0, 0)
	cmd := m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.ExitReason() != ExitInterrupt {
		t.Fatalf("expected interrupt exit, got %q", m.ExitReason())
	}
}

func TestLevelCursorPagingInModel(t *testing.T) {
	buttons := make([]menu.Button, 12)
	for i := range buttons {
		buttons[i] = menu.Button{Name: fmt.Sprintf("item-%02d", i), Icon: "", Command: "true"}
	}
	m, _ := newTestModel(&menu.Config{Buttons: buttons}, 40, 7)
	visible := m.maxVisibleItems()
	if visible != 4 {
		t.Fatalf("expected 4 visible rows, got %d", visible)
	}
	m.moveCursorPageDown()
	if got := m.currentLevel().Cursor; got != 4 {
		t.Fatalf("expected cursor 4, got %d", got)
	}
	m.moveCursorEnd()
	if got := m.currentLevel(); got.Cursor != 11 || got.ViewportOffset != 8 {
		t.Fatalf("expected cursor 11 offset 8, got %d/%d", got.Cursor, got.ViewportOffset)
	}
	m.moveCursorHome()
	if got := m.currentLevel(); got.Cursor != 0 || got.ViewportOffset != 0 {
		t.Fatalf("expected cursor 0 offset 0, got %d/%d", got.Cursor, got.ViewportOffset)
	}
	m.moveCursorUp()
	if got := m.currentLevel().Cursor; got != 11 {
		t.Fatalf("expected wrap to 11, got %d", got)
	}
}
