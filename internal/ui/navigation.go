package ui

import (
	"github.com/atomicstack/popup-launcher/internal/menu"
	"github.com/atomicstack/popup-launcher/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// dismiss applies the outside-interaction rule: a sub-menu returns to the
// root, the root closes the overlay.
func (m *Model) dismiss() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return m.quit(ExitDismissed)
	}
	from := current.ID()
	action := m.menu.Dismiss()
	m.events.UI.Dismiss(from, action.String())
	if action == menu.DismissClose {
		return m.quit(ExitDismissed)
	}
	m.popLevel()
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	return m.dismiss()
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	m.events.UI.MenuEnter(current.ID(), item.ID, item.Label, current.Filter)
	return m.activate(item)
}

// activate hands item to the menu state machine and mirrors the resulting
// transition onto the level stack.
func (m *Model) activate(item menu.Item) tea.Cmd {
	current := m.currentLevel()
	if current != nil && item.Kind != menu.KindBack {
		beforeCursor := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, beforeCursor)
	}
	intent, err := m.menu.Activate(item)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	switch in := intent.(type) {
	case menu.Navigate:
		m.pushLevel()
	case menu.GoBack:
		m.popLevel()
	case menu.Run:
		m.loading = true
		m.pendingLabel = in.Label
		m.errMsg = ""
		m.forceClearInfo()
		return m.bus.Execute(command.Request{ID: item.ID, Label: in.Label, Command: in.Command})
	}
	return nil
}

// pushLevel appends a level for the state machine's current view.
func (m *Model) pushLevel() {
	view := m.menu.View()
	lvl := newLevel(view, m.menu.Items())
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	m.errMsg = ""
	m.forceClearInfo()
	if len(lvl.Items) == 1 && lvl.Items[0].Kind == menu.KindBack {
		m.setInfo("No entries in this category.")
	}
	m.log.Debug("menu level opened", zap.String("level", lvl.ID()), zap.Int("items", len(lvl.Items)))
}

// popLevel drops the sub-menu level and puts the cursor back on the entry
// that opened it.
func (m *Model) popLevel() {
	if len(m.stack) <= 1 {
		return
	}
	current := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	parent := m.currentLevel()
	parent.UpdateItems(m.menu.Items())
	if idx := parent.IndexOf(current.ID()); idx >= 0 {
		parent.Cursor = idx
	} else if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
		parent.Cursor = parent.LastCursor
	}
	parent.LastCursor = -1
	m.syncViewport(parent)
	m.errMsg = ""
	m.forceClearInfo()
	m.events.UI.MenuBack(current.ID())
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorUp() {
			m.events.UI.MenuCursor(current.ID(), current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorDown() {
			m.events.UI.MenuCursor(current.ID(), current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			m.events.UI.MenuCursor(current.ID(), current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			m.events.UI.MenuCursor(current.ID(), current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			m.events.UI.MenuCursor(current.ID(), current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			m.events.UI.MenuCursor(current.ID(), current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return m.quit(ExitInterrupt)
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up", "ctrl+p":
		m.moveCursorUp()
	case "down", "ctrl+n":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}
