package state

import (
	"github.com/atomicstack/popup-launcher/internal/menu"
)

// Level holds the presentation state for one menu view: the rows produced
// by the menu state machine plus cursor, filter and scroll position.
type Level struct {
	View           menu.View
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level for view with the cursor on the first row.
func NewLevel(view menu.View, title string, items []menu.Item) *Level {
	l := &Level{
		View:       view,
		Title:      title,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// ID is the node identifier of the underlying view.
func (l *Level) ID() string {
	return l.View.ID()
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the highlighted item.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the rows, keeping the filter and scroll position when
// they still apply.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
