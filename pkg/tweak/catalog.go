package tweak

import "sort"

// Catalog is an immutable mapping from macro name to Action, built once per
// run from the tweak configuration. Several macro names may share a single
// Action value, which is how the godmode and fishing macros stay coordinated.
type Catalog struct {
	actions map[string]Action
}

// NewCatalog copies the given mapping into a read-only catalog.
func NewCatalog(actions map[string]Action) *Catalog {
	m := make(map[string]Action, len(actions))
	for name, action := range actions {
		m[name] = action
	}
	return &Catalog{actions: m}
}

// Resolve looks up the action bound to a macro name.
func (c *Catalog) Resolve(name string) (Action, bool) {
	action, ok := c.actions[name]
	return action, ok
}

// Names returns every configured macro name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of configured macro names.
func (c *Catalog) Len() int {
	return len(c.actions)
}
