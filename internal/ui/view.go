package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/popup-launcher/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	itemIndicator     = "▌"
	categoryMarker    = " ›"
	footerHint        = "↑/↓ move  enter select  esc back  ctrl+c quit"
	bottomBarRows     = 2 // error/status + filter prompt
	maxGlyphIconWidth = 2
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: m.styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
		start, displayItems := m.visibleWindow(current)
		if len(current.Items) == 0 {
			msg := "(no entries)"
			if current.Filter != "" {
				msg = fmt.Sprintf("No matches for %q", current.Filter)
			}
			lines = append(lines, styledLine{text: msg, style: m.styles.Info})
		} else {
			for i, item := range displayItems {
				lines = append(lines, m.buildItemLine(item, start+i, current, m.width))
			}
		}
	}
	if m.reservesInfoRows() {
		lines = append(lines, styledLine{})
		info, style := m.infoLine()
		lines = append(lines, styledLine{text: info, style: style})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: m.styles.Footer})
	}
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	case m.loading:
		statusLine = styledLine{text: fmt.Sprintf("Launching %s…", m.pendingLabel), style: m.styles.Loading}
	}
	bottomLines := applyWidth([]styledLine{statusLine, {text: m.filterPrompt()}}, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// visibleWindow returns the first visible index and the slice of items that
// fit in the viewport.
func (m *Model) visibleWindow(current *level) (int, []menu.Item) {
	displayItems := current.Items
	maxItems := m.maxVisibleItems()
	if maxItems <= 0 || len(displayItems) <= maxItems {
		current.ViewportOffset = 0
		return 0, displayItems
	}
	start := max(current.ViewportOffset, 0)
	if start+maxItems > len(displayItems) {
		start = max(len(displayItems)-maxItems, 0)
		current.ViewportOffset = start
	}
	return start, displayItems[start : start+maxItems]
}

// buildItemLine constructs a single styledLine for a menu item. width is the
// target column width; when > 0 the text is padded so that the selected
// item's background spans the full container.
func (m *Model) buildItemLine(item menu.Item, idx int, current *level, width int) styledLine {
	lineStyle := m.styles.Item
	indicatorStyle := m.styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = m.styles.SelectedItemIndicator
		lineStyle = m.styles.SelectedItem
	}
	label := item.Label
	if icon := glyphIcon(item.Icon); icon != "" {
		label = icon + " " + label
	}
	if item.Kind == menu.KindCategory {
		label += categoryMarker
	}
	fullText := itemIndicator + " " + label
	if width > 0 {
		if pad := width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the indicator
	}
}

// glyphIcon returns icon when it is a short glyph that can be drawn in a
// terminal cell. File paths and icon theme names yield "".
func glyphIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" || strings.ContainsAny(icon, `/\.`) {
		return ""
	}
	if w := runewidth.StringWidth(icon); w == 0 || w > maxGlyphIconWidth {
		return ""
	}
	if len([]rune(icon)) > maxGlyphIconWidth {
		return ""
	}
	return icon
}

// infoLine is the transient info message when one is set, otherwise the
// description of the highlighted entry.
func (m *Model) infoLine() (string, *lipgloss.Style) {
	if info := m.currentInfo(); info != "" {
		return info, m.styles.Info
	}
	if current := m.currentLevel(); current != nil {
		if item, ok := current.Current(); ok {
			return item.Description, m.styles.Description
		}
	}
	return "", m.styles.Description
}

// reservesInfoRows reports whether the info block is drawn. Rows are kept
// for the whole level when any entry has a description so that moving the
// cursor does not shift the layout.
func (m *Model) reservesInfoRows() bool {
	if m.currentInfo() != "" {
		return true
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	for _, item := range current.Full {
		if item.Description != "" {
			return true
		}
	}
	return false
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	if len(m.stack) == 0 {
		return nil
	}
	segments := make([]string, 0, len(m.stack))
	segments = append(segments, defaultRootTitle)
	for _, lvl := range m.stack[1:] {
		if segment := strings.TrimSpace(lvl.Title); segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// itemRowOffset is the screen row of the first item.
func (m *Model) itemRowOffset() int {
	if m.menuHeader() != "" {
		return 1
	}
	return 0
}

// itemAt maps a screen cell to an index in the current level. Cells outside
// the rendered item rows report false.
func (m *Model) itemAt(x, y int) (int, bool) {
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return 0, false
	}
	if x < 0 || (m.width > 0 && x >= m.width) {
		return 0, false
	}
	m.syncViewport(current)
	m.visibleWindow(current)
	return current.VisibleIndex(y-m.itemRowOffset(), m.maxVisibleItems())
}

// handleMouseMsg activates clicked rows and treats clicks anywhere else as a
// dismiss. The wheel moves the cursor.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.mouse {
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursorUp()
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursorDown()
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if m.loading {
		return nil
	}
	idx, ok := m.itemAt(ev.X, ev.Y)
	if !ok {
		return m.dismiss()
	}
	current := m.currentLevel()
	current.MoveCursorTo(idx)
	item := current.Items[idx]
	m.events.UI.MenuEnter(current.ID(), item.ID, item.Label, current.Filter)
	return m.activate(item)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows
	if header := m.menuHeader(); header != "" {
		used++
	}
	if m.reservesInfoRows() {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if strings.Contains(text, "\x1b[") {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
