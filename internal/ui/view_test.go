package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/popup-launcher/internal/menu"
)

func TestViewShowsHeaderItemsAndDescription(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 60, 12)
	view := m.View()
	for _, want := range []string{"main menu", "Apps ›", "Files", "Term", "Applications"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	m.moveCursorDown()
	m.moveCursorDown()
	if view := m.View(); strings.Contains(view, "Applications") {
		t.Fatalf("expected description to follow the cursor, got:\n%s", view)
	}
}

func TestViewRendersGlyphIconsOnly(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 60, 12)
	m.handleEnterKey()
	view := m.View()
	if !strings.Contains(view, "\ue62b Vim") {
		t.Fatalf("expected glyph icon before Vim, got:\n%s", view)
	}
	if strings.Contains(view, "browser.svg") {
		t.Fatalf("icon paths must not be rendered, got:\n%s", view)
	}
	if !strings.Contains(view, "main menu→Apps") {
		t.Fatalf("expected category header, got:\n%s", view)
	}
}

func TestGlyphIcon(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"\uf120":                    "\uf120",
		" \uf120 ":                  "\uf120",
		"/usr/share/icons/term.png": "",
		"utilities-terminal":        "",
		"firefox.desktop":           "",
		"\U0001F680":                "\U0001F680",
	}
	for in, want := range cases {
		if got := glyphIcon(in); got != want {
			t.Fatalf("glyphIcon(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestViewReportsNoMatches(t *testing.T) {
	m, _ := newTestModel(launcherConfig(), 60, 12)
	m.appendToFilter("zzz")
	if view := m.View(); !strings.Contains(view, `No matches for "zzz"`) {
		t.Fatalf("expected no-match message, got:\n%s", view)
	}
}

func TestViewShowsDispatchError(t *testing.T) {
	m, _ := newTestModel(&menu.Config{Buttons: []menu.Button{{Name: "Term", Icon: "", Command: "kitty"}}}, 60, 8)
	m.errMsg = "dispatch kitty: no such file"
	if view := m.View(); !strings.Contains(view, "Error: dispatch kitty") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("launcher", 4); got != "lau…" {
		t.Fatalf("expected lau…, got %q", got)
	}
	if got := truncateText("abc", 10); got != "abc" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	if got := truncateText("日本語", 4); got != "日…" {
		t.Fatalf("expected wide runes measured by cell width, got %q", got)
	}
}
