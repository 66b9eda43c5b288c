package menu

import (
	"errors"
	"reflect"
	"testing"
)

func appsConfig() *Config {
	return &Config{
		Categories: []Category{{Name: "Apps", Icon: ""}},
		Buttons: []Button{
			{Name: "Vim", Command: "vim", Category: "Apps"},
			{Name: "Files", Command: "nautilus"},
		},
	}
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func kinds(items []Item) []Kind {
	out := make([]Kind, len(items))
	for i, item := range items {
		out[i] = item.Kind
	}
	return out
}

func TestRootItemsSingleUncategorizedButton(t *testing.T) {
	cfg := &Config{Buttons: []Button{{Name: "Term", Icon: "", Command: "kitty"}}}
	s := NewState(cfg, nil)
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Kind != KindCommand || items[0].Label != "Term" || items[0].Command != "kitty" {
		t.Fatalf("unexpected item %#v", items[0])
	}
}

func TestRootAndSubMenuViews(t *testing.T) {
	s := NewState(appsConfig(), nil)
	root := s.Items()
	if got, want := labels(root), []string{"Apps", "Files"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("root labels: expected %v, got %v", want, got)
	}
	if got, want := kinds(root), []Kind{KindCategory, KindCommand}; !reflect.DeepEqual(got, want) {
		t.Fatalf("root kinds: expected %v, got %v", want, got)
	}

	if err := s.EnterCategory("Apps"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.View().Category != "Apps" {
		t.Fatalf("expected Apps view, got %#v", s.View())
	}
	sub := s.Items()
	if got, want := labels(sub), []string{"Back", "Vim"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sub labels: expected %v, got %v", want, got)
	}
	if sub[0].Kind != KindBack || sub[1].Command != "vim" {
		t.Fatalf("unexpected sub-menu items %#v", sub)
	}
}

func TestRootOrderingAndCounts(t *testing.T) {
	cfg := &Config{
		Categories: []Category{{Name: "B"}, {Name: "A"}, {Name: "Empty"}},
		Buttons: []Button{
			{Name: "one", Command: "1"},
			{Name: "two", Command: "2", Category: "A"},
			{Name: "three", Command: "3", Category: "Unknown"},
			{Name: "four", Command: "4", Category: "B"},
			{Name: "five", Command: "5"},
			{Name: "six", Command: "6", Category: "A"},
		},
	}
	s := NewState(cfg, nil)
	root := s.Items()
	want := []string{"B", "A", "Empty", "one", "three", "five"}
	if got := labels(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if err := s.EnterCategory("A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := labels(s.Items()), []string{"Back", "two", "six"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	s.Back()

	if err := s.EnterCategory("Empty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	empty := s.Items()
	if len(empty) != 1 || empty[0].Kind != KindBack {
		t.Fatalf("expected only a back entry for an empty category, got %#v", empty)
	}
}

func TestEnterThenBackRestoresRootView(t *testing.T) {
	s := NewState(appsConfig(), nil)
	before := s.Items()
	if err := s.EnterCategory("Apps"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Back()
	if !s.View().IsRoot() {
		t.Fatalf("expected root view after back")
	}
	if after := s.Items(); !reflect.DeepEqual(before, after) {
		t.Fatalf("root view changed:\nbefore %#v\nafter  %#v", before, after)
	}
}

func TestEnterUnknownCategoryStaysAtRoot(t *testing.T) {
	s := NewState(appsConfig(), nil)
	err := s.EnterCategory("Games")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	var unknown *UnknownCategoryError
	if !errors.As(err, &unknown) || unknown.Name != "Games" {
		t.Fatalf("expected *UnknownCategoryError naming Games, got %#v", err)
	}
	if !s.View().IsRoot() {
		t.Fatalf("expected state to remain at root, got %#v", s.View())
	}
}

func TestEnterEmptyCategoryNameStaysAtRoot(t *testing.T) {
	cfg := appsConfig()
	cfg.Categories = append(cfg.Categories, Category{Name: ""})
	s := NewState(cfg, nil)
	if err := s.EnterCategory(""); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory for the empty name, got %v", err)
	}
	if !s.View().IsRoot() {
		t.Fatalf("expected state to remain at root, got %#v", s.View())
	}
	if err := s.EnterCategory("Apps"); err != nil {
		t.Fatalf("expected Apps to remain enterable, got %v", err)
	}
}

func TestEnterCategoryFromSubMenuIsRejected(t *testing.T) {
	cfg := appsConfig()
	cfg.Categories = append(cfg.Categories, Category{Name: "Other"})
	s := NewState(cfg, nil)
	if err := s.EnterCategory("Apps"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.EnterCategory("Other"); !errors.Is(err, ErrNotAtRoot) {
		t.Fatalf("expected ErrNotAtRoot, got %v", err)
	}
	if s.View().Category != "Apps" {
		t.Fatalf("expected to stay in Apps, got %#v", s.View())
	}
}

func TestBackAtRootIsNoop(t *testing.T) {
	s := NewState(appsConfig(), nil)
	s.Back()
	if !s.View().IsRoot() {
		t.Fatalf("expected root view")
	}
}

func TestActivateInterpretsIntents(t *testing.T) {
	s := NewState(appsConfig(), nil)
	root := s.Items()

	intent, err := s.Activate(root[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nav, ok := intent.(Navigate); !ok || nav.Category != "Apps" {
		t.Fatalf("expected Navigate{Apps}, got %#v", intent)
	}
	if s.View().Category != "Apps" {
		t.Fatalf("expected Apps view after navigation")
	}

	sub := s.Items()
	intent, err = s.Activate(sub[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	run, ok := intent.(Run)
	if !ok || run.Command != "vim" || run.Label != "Vim" {
		t.Fatalf("expected Run{vim}, got %#v", intent)
	}
	if s.View().Category != "Apps" {
		t.Fatalf("leaf activation must not change state")
	}

	intent, err = s.Activate(sub[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := intent.(GoBack); !ok {
		t.Fatalf("expected GoBack, got %#v", intent)
	}
	if !s.View().IsRoot() {
		t.Fatalf("expected root view after back entry")
	}
}

func TestActivateUnknownCategoryReturnsError(t *testing.T) {
	s := NewState(appsConfig(), nil)
	_, err := s.Activate(CategoryItem(Category{Name: "Ghost"}))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if !s.View().IsRoot() {
		t.Fatalf("expected root view")
	}
}

func TestDismissRule(t *testing.T) {
	s := NewState(appsConfig(), nil)
	if got := s.Dismiss(); got != DismissClose {
		t.Fatalf("expected close at root, got %v", got)
	}
	if err := s.EnterCategory("Apps"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Dismiss(); got != DismissBack {
		t.Fatalf("expected back in sub-menu, got %v", got)
	}
	if !s.View().IsRoot() {
		t.Fatalf("expected dismiss to return to root")
	}
}

func TestButtonItemIDsAreUnique(t *testing.T) {
	cfg := &Config{Buttons: []Button{
		{Name: "Same", Command: "a"},
		{Name: "Same", Command: "b"},
		{Name: "", Command: "c"},
	}}
	items := NewState(cfg, nil).Items()
	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %q", item.ID)
		}
		seen[item.ID] = true
	}
	if items[2].ID != "button:2:button" {
		t.Fatalf("expected fallback slug, got %q", items[2].ID)
	}
}
