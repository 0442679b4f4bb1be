// Package tweak implements the catalog of value transformations that are
// applied to macros found in template files. Each macro name maps to an
// Action; an Action turns the macro's inline default text into the value
// written to the live file.
package tweak

// Action computes a replacement value for a macro from its declared default.
type Action interface {
	// Apply returns the replacement text for the macro. The name is passed
	// through because some actions serve several macro names at once and
	// dispatch on it.
	Apply(name, def string) (string, error)

	// Describe returns a human-readable summary of the action's effect,
	// used by the list command.
	Describe() string
}

// DefaultAction always returns the macro's default value unchanged.
type DefaultAction struct{}

func (DefaultAction) Apply(name, def string) (string, error) {
	return def, nil
}

func (DefaultAction) Describe() string {
	return "Always use default"
}

// DisabledAction wraps another action, keeping its configuration around but
// always passing the default through. Useful to stop modifying an attribute
// without losing the settings in the catalog.
type DisabledAction struct {
	inner Action
}

// Disabled wraps an action in passthrough mode.
func Disabled(inner Action) DisabledAction {
	return DisabledAction{inner: inner}
}

func (a DisabledAction) Apply(name, def string) (string, error) {
	return def, nil
}

func (a DisabledAction) Describe() string {
	return a.inner.Describe() + " (disabled, using defaults)"
}
