package menu

import (
	"strconv"
	"strings"
	"unicode"
)

// Kind classifies what activating an item does.
type Kind int

const (
	KindCommand Kind = iota
	KindCategory
	KindBack
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindCategory:
		return "category"
	case KindBack:
		return "back"
	default:
		return "unknown"
	}
}

const (
	backItemID    = "nav:back"
	backItemLabel = "Back"
)

// Item represents a selectable menu entry. It carries the payload that is
// interpreted when the entry is activated, so renderers never need to
// capture per-entry callbacks.
type Item struct {
	ID          string
	Label       string
	Icon        string
	Description string
	Kind        Kind
	Category    string
	Command     string
}

// Intent is the tagged payload produced by activating an Item.
type Intent interface {
	intent()
}

// Navigate asks the state machine to open a category sub-menu.
type Navigate struct {
	Category string
}

// GoBack asks the state machine to return to the root menu.
type GoBack struct{}

// Run is a leaf action: the command should be dispatched and the overlay
// closed.
type Run struct {
	Command string
	Label   string
}

func (Navigate) intent() {}
func (GoBack) intent()   {}
func (Run) intent()      {}

// Intent converts the item into its activation payload.
func (i Item) Intent() Intent {
	switch i.Kind {
	case KindCategory:
		return Navigate{Category: i.Category}
	case KindBack:
		return GoBack{}
	default:
		return Run{Command: i.Command, Label: i.Label}
	}
}

// BackItem is the synthetic first entry of every sub-menu.
func BackItem() Item {
	return Item{ID: backItemID, Label: backItemLabel, Kind: KindBack}
}

// CategoryItem builds the root navigation entry for a category.
func CategoryItem(cat Category) Item {
	return Item{
		ID:          CategoryNodeID(cat.Name),
		Label:       cat.Name,
		Icon:        cat.Icon,
		Description: cat.Description,
		Kind:        KindCategory,
		Category:    cat.Name,
	}
}

// ButtonItem builds a leaf entry. index is the button's position in the
// config and keeps IDs unique when names repeat.
func ButtonItem(index int, btn Button) Item {
	return Item{
		ID:          buttonID(index, btn.Name),
		Label:       btn.Name,
		Icon:        btn.Icon,
		Description: btn.Description,
		Kind:        KindCommand,
		Category:    btn.Category,
		Command:     btn.Command,
	}
}

func buttonID(index int, name string) string {
	slug := slugify(name)
	if slug == "" {
		slug = "button"
	}
	return "button:" + strconv.Itoa(index) + ":" + slug
}

func slugify(name string) string {
	if name == "" {
		return name
	}
	parts := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(parts, "-")
}
