package transform

import (
	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/shared"
)

// EventModifiers is the normalized modifier list of a v-on directive.
// Tokens that are not a known flag are key filters, kept in source order.
type EventModifiers struct {
	Stop    bool
	Prevent bool
	Self    bool
	Capture bool
	Once    bool
	Passive bool
	Left    bool
	Right   bool
	Middle  bool
	Exact   bool
	Keys    []string
}

// ParseEventModifiers sorts raw modifier tokens into flags and key filters.
func ParseEventModifiers(modifiers []string) EventModifiers {
	var m EventModifiers
	for _, mod := range modifiers {
		switch mod {
		case "stop":
			m.Stop = true
		case "prevent":
			m.Prevent = true
		case "self":
			m.Self = true
		case "capture":
			m.Capture = true
		case "once":
			m.Once = true
		case "passive":
			m.Passive = true
		case "left":
			m.Left = true
		case "right":
			m.Right = true
		case "middle":
			m.Middle = true
		case "exact":
			m.Exact = true
		default:
			m.Keys = append(m.Keys, mod)
		}
	}
	return m
}

// NeedsGuard reports whether the handler must be wrapped by guard helpers.
// Option modifiers (capture, once, passive) only change the prop name.
func (m EventModifiers) NeedsGuard() bool {
	return m.Stop || m.Prevent || m.Self || m.Left || m.Right || m.Middle || m.Exact || len(m.Keys) > 0
}

// GuardModifiers returns the modifiers handled by withModifiers, in a fixed
// order.
func (m EventModifiers) GuardModifiers() []string {
	var out []string
	for _, g := range []struct {
		on   bool
		name string
	}{
		{m.Stop, "stop"},
		{m.Prevent, "prevent"},
		{m.Self, "self"},
		{m.Left, "left"},
		{m.Right, "right"},
		{m.Middle, "middle"},
		{m.Exact, "exact"},
	} {
		if g.on {
			out = append(out, g.name)
		}
	}
	return out
}

// OptionSuffix is appended to the handler prop name for listener options.
func (m EventModifiers) OptionSuffix() string {
	suffix := ""
	if m.Capture {
		suffix += "Capture"
	}
	if m.Once {
		suffix += "Once"
	}
	if m.Passive {
		suffix += "Passive"
	}
	return suffix
}

// EventName returns the event a v-on directive listens to: the static
// argument, or the source text of a computed argument. It returns false
// only for the bare v-on="handlers" object form.
func EventName(dir *ast.Directive) (string, bool) {
	if dir.Arg == nil {
		return "", false
	}
	return ast.ExpressionText(dir.Arg), true
}

// IsDynamicEvent reports whether the event name is computed at runtime.
func IsDynamicEvent(dir *ast.Directive) bool {
	return dir.Arg != nil && !ast.IsStaticExp(dir.Arg)
}

// HandlerPropName derives the prop a handler is passed as.
func HandlerPropName(event string) string {
	return shared.ToHandlerKey(event)
}

// EventBinding is a resolved v-on directive.
type EventBinding struct {
	Dir       *ast.Directive
	Modifiers EventModifiers
}

// ResolveEvent resolves a v-on directive. It returns nil for any other
// directive.
func ResolveEvent(dir *ast.Directive) *EventBinding {
	if dir == nil || dir.Name != "on" {
		return nil
	}
	return &EventBinding{
		Dir:       dir,
		Modifiers: ParseEventModifiers(dir.Modifiers),
	}
}

// IsObjectForm reports whether this is v-on="handlers" without an event.
func (b *EventBinding) IsObjectForm() bool {
	return b.Dir.Arg == nil
}

// IsDynamic reports whether the event name is computed.
func (b *EventBinding) IsDynamic() bool {
	return IsDynamicEvent(b.Dir)
}

// PropName returns the handler prop for a static event, including option
// suffixes: @click.once -> "onClickOnce". Dynamic and object forms return "".
func (b *EventBinding) PropName() string {
	if b.IsObjectForm() || b.IsDynamic() {
		return ""
	}
	name, _ := EventName(b.Dir)
	return HandlerPropName(name) + b.Modifiers.OptionSuffix()
}

// Handler returns the handler expression source, empty when absent.
func (b *EventBinding) Handler() string {
	return ast.ExpressionText(b.Dir.Exp)
}

// Helpers lists the runtime helpers codegen needs for this binding, in the
// order the handler is wrapped: withModifiers sits inside withKeys.
func (b *EventBinding) Helpers() []ast.RuntimeHelper {
	var helpers []ast.RuntimeHelper
	if b.IsObjectForm() {
		return append(helpers, ast.ToHandlers)
	}
	if b.IsDynamic() {
		helpers = append(helpers, ast.ToHandlerKey)
	}
	if !b.Modifiers.NeedsGuard() {
		return helpers
	}
	if len(b.Modifiers.GuardModifiers()) > 0 {
		helpers = append(helpers, ast.WithModifiers)
	}
	if len(b.Modifiers.Keys) > 0 {
		helpers = append(helpers, ast.WithKeys)
	}
	return helpers
}
