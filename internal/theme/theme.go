package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Description           *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

// Palette holds the colours the style set is derived from. Menu configs may
// override any of them through their theme object.
type Palette struct {
	Accent     string
	Foreground string
	Muted      string
	Selection  string
	Highlight  string
	Error      string
}

// DefaultPalette is the built-in colour scheme.
var DefaultPalette = Palette{
	Accent:     "33",
	Foreground: "249",
	Muted:      "241",
	Selection:  "238",
	Highlight:  "255",
	Error:      "196",
}

var defaultStyles = build(DefaultPalette)

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// FromConfig derives a style set from a menu theme object. Recognised keys
// are accent, foreground, muted, selection, highlight and error; values must
// be strings holding an ANSI colour number or a hex colour. Other keys are
// ignored.
func FromConfig(theme map[string]any) (*Styles, error) {
	palette, err := PaletteFromConfig(theme)
	if err != nil {
		return Default(), err
	}
	styles := build(palette)
	return &styles, nil
}

// PaletteFromConfig overlays theme values on DefaultPalette.
func PaletteFromConfig(theme map[string]any) (Palette, error) {
	palette := DefaultPalette
	fields := map[string]*string{
		"accent":     &palette.Accent,
		"foreground": &palette.Foreground,
		"muted":      &palette.Muted,
		"selection":  &palette.Selection,
		"highlight":  &palette.Highlight,
		"error":      &palette.Error,
	}
	for key, target := range fields {
		raw, ok := theme[key]
		if !ok || raw == nil {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return DefaultPalette, fmt.Errorf("theme.%s: expected a colour string, got %T", key, raw)
		}
		value = strings.TrimSpace(value)
		if !validColour(value) {
			return DefaultPalette, fmt.Errorf("theme.%s: invalid colour %q", key, value)
		}
		*target = value
	}
	return palette, nil
}

func validColour(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(value) <= 3
}

func build(p Palette) Styles {
	accent := lipgloss.Color(p.Accent)
	fg := lipgloss.Color(p.Foreground)
	muted := lipgloss.Color(p.Muted)
	selection := lipgloss.Color(p.Selection)
	highlight := lipgloss.Color(p.Highlight)
	return Styles{
		Loading:               ptr(lipgloss.NewStyle().Foreground(accent).Italic(true)),
		Item:                  ptr(lipgloss.NewStyle().Foreground(fg)),
		ItemIndicator:         ptr(lipgloss.NewStyle().Foreground(selection)),
		SelectedItemIndicator: ptr(lipgloss.NewStyle().Foreground(accent).Background(selection)),
		SelectedItem:          ptr(lipgloss.NewStyle().Foreground(highlight).Background(selection).Bold(true)),
		Error:                 ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true)),
		Info:                  ptr(lipgloss.NewStyle().Foreground(fg)),
		Description:           ptr(lipgloss.NewStyle().Foreground(muted).Italic(true)),
		Header:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)),
		Footer:                ptr(lipgloss.NewStyle().Foreground(fg)),
		Filter:                ptr(lipgloss.NewStyle().Foreground(fg)),
		FilterPrompt:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)),
		FilterPlaceholder:     ptr(lipgloss.NewStyle().Foreground(muted)),
		Cursor:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent).Blink(true)),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
