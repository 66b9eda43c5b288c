package ui

import (
	"fmt"

	"github.com/atomicstack/popup-launcher/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// handleActionResultMsg closes the overlay once a leaf command has been
// handed off. Dispatch failures are reported but never keep the popup open.
func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		m.events.Action.Error(result.Err)
		return m.quit(ExitLaunched)
	}
	m.events.Action.Success(fmt.Sprintf("launched %s", result.Label))
	return m.quit(ExitLaunched)
}
