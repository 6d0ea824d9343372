package ast

// BindingType describes how a name visible to the template was declared in
// the component's script.
type BindingType string

const (
	BindingSetupConst         BindingType = "setup-const"
	BindingSetupReactiveConst BindingType = "setup-reactive-const"
	BindingSetupMaybeRef      BindingType = "setup-maybe-ref"
	BindingSetupRef           BindingType = "setup-ref"
	BindingSetupLet           BindingType = "setup-let"
	BindingProps              BindingType = "props"
	BindingData               BindingType = "data"
	BindingOptions            BindingType = "options"
)

// BindingOracle answers whether a name is an in-scope script binding.
type BindingOracle interface {
	IsBinding(name string) bool
	BindingOf(name string) (BindingType, bool)
}

// BindingMetadata is the map form of a BindingOracle produced by script
// analysis.
type BindingMetadata map[string]BindingType

// IsBinding implements BindingOracle
func (m BindingMetadata) IsBinding(name string) bool {
	_, ok := m[name]
	return ok
}

// BindingOf implements BindingOracle
func (m BindingMetadata) BindingOf(name string) (BindingType, bool) {
	t, ok := m[name]
	return t, ok
}
