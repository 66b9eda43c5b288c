package menu

import (
	"go.uber.org/zap"
)

// View identifies the level currently shown. An empty Category is the root.
type View struct {
	Category string
}

// IsRoot reports whether the view is the root menu.
func (v View) IsRoot() bool {
	return v.Category == ""
}

// ID returns the node identifier for the view.
func (v View) ID() string {
	if v.IsRoot() {
		return RootID
	}
	return CategoryNodeID(v.Category)
}

// DismissAction is the outcome of a pointer interaction outside the overlay.
type DismissAction int

const (
	// DismissBack means the sub-menu was closed and the root is shown again.
	DismissBack DismissAction = iota
	// DismissClose means the overlay should close.
	DismissClose
)

func (d DismissAction) String() string {
	if d == DismissBack {
		return "back"
	}
	return "close"
}

// State is the two-level navigation machine: Root, or SubMenu(category).
// It is owned by the event loop and is not safe for concurrent use.
type State struct {
	registry *Registry
	view     View
	log      *zap.Logger
}

// NewState creates a state machine positioned at the root menu.
func NewState(cfg *Config, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	return &State{
		registry: BuildRegistry(cfg),
		log:      log,
	}
}

// View returns the current level.
func (s *State) View() View {
	return s.view
}

// Registry exposes the index the state renders from.
func (s *State) Registry() *Registry {
	return s.registry
}

// EnterCategory moves from the root to the named category. Unknown names,
// and the empty name that denotes the root itself, leave the state untouched
// and return an *UnknownCategoryError.
func (s *State) EnterCategory(name string) error {
	if !s.view.IsRoot() {
		s.log.Warn("category navigation outside root menu",
			zap.String("category", name),
			zap.String("current", s.view.Category),
		)
		return ErrNotAtRoot
	}
	if _, ok := s.registry.Find(name); !ok || name == "" {
		err := &UnknownCategoryError{Name: name}
		s.log.Warn("ignoring navigation to unknown category", zap.String("category", name))
		return err
	}
	s.view = View{Category: name}
	s.log.Debug("entered category", zap.String("category", name))
	return nil
}

// Back returns to the root menu. It is a no-op at the root.
func (s *State) Back() {
	if s.view.IsRoot() {
		return
	}
	s.log.Debug("returning to root menu", zap.String("from", s.view.Category))
	s.view = View{}
}

// Items returns the entries to render for the current level.
func (s *State) Items() []Item {
	if s.view.IsRoot() {
		return s.registry.RootItems()
	}
	items, ok := s.registry.CategoryItems(s.view.Category)
	if !ok {
		// unreachable while EnterCategory guards the transition
		return []Item{BackItem()}
	}
	return items
}

// Activate interprets an item's payload. Navigation intents are applied to
// the state; Run intents are returned untouched for the caller to dispatch.
func (s *State) Activate(item Item) (Intent, error) {
	intent := item.Intent()
	switch in := intent.(type) {
	case Navigate:
		if err := s.EnterCategory(in.Category); err != nil {
			return intent, err
		}
	case GoBack:
		s.Back()
	case Run:
		s.log.Debug("leaf selected", zap.String("label", in.Label), zap.String("command", in.Command))
	}
	return intent, nil
}

// Dismiss applies the outside-pointer rule: inside a sub-menu it goes back
// to the root, at the root it asks for the overlay to close.
func (s *State) Dismiss() DismissAction {
	if s.view.IsRoot() {
		return DismissClose
	}
	s.Back()
	return DismissBack
}
