package menu

// Node represents a menu level within the registry: the root, or one
// category sub-menu.
type Node struct {
	ID      string
	Buttons []Item
}

// Registry indexes a Config into the buckets the navigation state renders
// from: categories in document order, the uncategorized root bucket, and one
// bucket per category.
type Registry struct {
	root       *Node
	categories []Category
	nodes      map[string]*Node
}

// RootID identifies the root node.
const RootID = "root"

// BuildRegistry constructs the registry from a config. Buttons whose
// category is empty or unknown land in the root bucket. Repeated category
// names share one bucket.
func BuildRegistry(cfg *Config) *Registry {
	r := &Registry{
		root:  &Node{ID: RootID},
		nodes: make(map[string]*Node),
	}
	if cfg == nil {
		return r
	}
	r.categories = append([]Category(nil), cfg.Categories...)
	for _, cat := range cfg.Categories {
		if _, ok := r.nodes[cat.Name]; !ok {
			r.nodes[cat.Name] = &Node{ID: CategoryNodeID(cat.Name)}
		}
	}
	for i, btn := range cfg.Buttons {
		item := ButtonItem(i, btn)
		if btn.Category != "" {
			if node, ok := r.nodes[btn.Category]; ok {
				node.Buttons = append(node.Buttons, item)
				continue
			}
		}
		r.root.Buttons = append(r.root.Buttons, item)
	}
	return r
}

// CategoryNodeID is the node identifier used for a category sub-menu.
func CategoryNodeID(name string) string {
	return "category:" + name
}

// Find locates a category node by category name.
func (r *Registry) Find(name string) (*Node, bool) {
	node, ok := r.nodes[name]
	return node, ok
}

// Categories returns the categories in document order.
func (r *Registry) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

// RootItems returns the root view: one navigation entry per category, then
// the uncategorized buttons.
func (r *Registry) RootItems() []Item {
	items := make([]Item, 0, len(r.categories)+len(r.root.Buttons))
	for _, cat := range r.categories {
		items = append(items, CategoryItem(cat))
	}
	items = append(items, r.root.Buttons...)
	return items
}

// CategoryItems returns a sub-menu view: the back entry followed by the
// category's buttons.
func (r *Registry) CategoryItems(name string) ([]Item, bool) {
	node, ok := r.nodes[name]
	if !ok {
		return nil, false
	}
	items := make([]Item, 0, len(node.Buttons)+1)
	items = append(items, BackItem())
	items = append(items, node.Buttons...)
	return items, true
}
