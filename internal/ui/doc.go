// Package ui contains the Bubble Tea program that renders the launcher popup.
// The Model type focuses on message orchestration, while dedicated helpers
// own navigation, input, rendering and dispatch.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse clicks, resizes, dispatch results).
//   - Navigation helpers (navigation.go) pass activated items to menu.State
//     and mirror the resulting transition onto a level stack that is at most
//     two deep: the root menu and one category sub-menu. Filter helpers
//     (input.go) keep text entry isolated from the event loop.
//
// State ownership:
//   - Which menu is shown is decided by menu.State alone. The level stack only
//     adds presentation state from internal/ui/state.Level: cursor, filter
//     and viewport.
//   - Leaf activations become command.Request values executed by the
//     command bus, which hands them to the dispatcher and replies with a
//     command.Result. The model quits once that result arrives, whether or
//     not the dispatch succeeded.
//
// Dismissal:
//   - esc and left clicks outside the item rows apply menu.State.Dismiss: a
//     sub-menu returns to the root, the root closes the popup.
package ui
