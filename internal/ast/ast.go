// Package ast defines the node model of the template compiler: the template
// tree produced by the parser, the codegen-only expression nodes that
// codegen lowers templates into, source locations, the runtime helper
// registry and the patch flag table.
//
// A tree is built once per compile call, mutated in place by the transform
// layer and consumed by codegen. Nothing in this package has side effects.
package ast

// NodeType tags every node variant.
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeElement
	NodeText
	NodeComment
	NodeSimpleExpression
	NodeInterpolation
	NodeAttribute
	NodeDirective
	NodeCompoundExpression
	NodeIf
	NodeIfBranch
	NodeFor

	// codegen-only
	NodeJSCallExpression
	NodeJSObjectExpression
	NodeJSProperty
	NodeJSArrayExpression
	NodeJSFunctionExpression
	NodeJSConditionalExpression
	NodeJSCacheExpression
	NodeJSBlockStatement
)

var nodeTypeNames = map[NodeType]string{
	NodeRoot:                    "Root",
	NodeElement:                 "Element",
	NodeText:                    "Text",
	NodeComment:                 "Comment",
	NodeSimpleExpression:        "SimpleExpression",
	NodeInterpolation:           "Interpolation",
	NodeAttribute:               "Attribute",
	NodeDirective:               "Directive",
	NodeCompoundExpression:      "CompoundExpression",
	NodeIf:                      "If",
	NodeIfBranch:                "IfBranch",
	NodeFor:                     "For",
	NodeJSCallExpression:        "JSCallExpression",
	NodeJSObjectExpression:      "JSObjectExpression",
	NodeJSProperty:              "JSProperty",
	NodeJSArrayExpression:       "JSArrayExpression",
	NodeJSFunctionExpression:    "JSFunctionExpression",
	NodeJSConditionalExpression: "JSConditionalExpression",
	NodeJSCacheExpression:       "JSCacheExpression",
	NodeJSBlockStatement:        "JSBlockStatement",
}

// String returns the variant name
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every node variant.
type Node interface {
	Type() NodeType
	Loc() SourceLocation
}

// ElementType classifies an element and selects the codegen algorithm used
// for it.
type ElementType int

const (
	ElementTypeElement ElementType = iota
	ElementTypeComponent
	ElementTypeSlot
	ElementTypeTemplate
)

// String returns the lower-case element type name
func (t ElementType) String() string {
	switch t {
	case ElementTypeElement:
		return "element"
	case ElementTypeComponent:
		return "component"
	case ElementTypeSlot:
		return "slot"
	case ElementTypeTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Namespace of an element.
type Namespace int

const (
	NamespaceHTML Namespace = iota
	NamespaceSVG
	NamespaceMathML
)

// String returns the namespace name
func (ns Namespace) String() string {
	switch ns {
	case NamespaceHTML:
		return "html"
	case NamespaceSVG:
		return "svg"
	case NamespaceMathML:
		return "mathml"
	default:
		return "unknown"
	}
}

// ImportItem is an import the generated module must declare.
type ImportItem struct {
	Exp  string
	Path string
}

// RootNode is the top of a template tree. It also carries the per-compile
// registries that codegen fills in.
type RootNode struct {
	Children []Node
	// Helpers records the runtime helpers referenced by generated code in
	// first-use order.
	Helpers *HelperSet
	// Components and Directives hold asset names that must be resolved at
	// runtime, in first-seen order.
	Components []string
	Directives []string
	Hoists     []Node
	Imports    []ImportItem
	Cached     int
	Temps      int
	// Transformed is set once the transform pass has run.
	Transformed bool
	Location    SourceLocation
}

// NewRoot creates a root with an empty helper set.
func NewRoot(children ...Node) *RootNode {
	return &RootNode{
		Children: children,
		Helpers:  NewHelperSet(),
		Location: LocStub,
	}
}

func (n *RootNode) Type() NodeType      { return NodeRoot }
func (n *RootNode) Loc() SourceLocation { return n.Location }

// AddComponent registers a component asset name once.
func (n *RootNode) AddComponent(name string) {
	if !containsString(n.Components, name) {
		n.Components = append(n.Components, name)
	}
}

// AddDirective registers a custom directive asset name once.
func (n *RootNode) AddDirective(name string) {
	if !containsString(n.Directives, name) {
		n.Directives = append(n.Directives, name)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ElementNode is an element, component, slot outlet or template wrapper.
type ElementNode struct {
	Tag      string
	TagType  ElementType
	NS       Namespace
	Props    []Prop
	Children []Node
	Location SourceLocation
}

func (n *ElementNode) Type() NodeType      { return NodeElement }
func (n *ElementNode) Loc() SourceLocation { return n.Location }

// InNamespace reports whether the element belongs to ns.
func (n *ElementNode) InNamespace(ns Namespace) bool {
	return n.NS == ns
}

// TextNode is static text.
type TextNode struct {
	Content  string
	Location SourceLocation
}

func (n *TextNode) Type() NodeType      { return NodeText }
func (n *TextNode) Loc() SourceLocation { return n.Location }
func (n *TextNode) compoundPart()       {}

// CommentNode is a template comment.
type CommentNode struct {
	Content  string
	Location SourceLocation
}

func (n *CommentNode) Type() NodeType      { return NodeComment }
func (n *CommentNode) Loc() SourceLocation { return n.Location }

// InterpolationNode is a {{ expression }} mustache.
type InterpolationNode struct {
	Content  ExpressionNode
	Location SourceLocation
}

func (n *InterpolationNode) Type() NodeType      { return NodeInterpolation }
func (n *InterpolationNode) Loc() SourceLocation { return n.Location }
func (n *InterpolationNode) compoundPart()       {}

// Prop is either an *Attribute or a *Directive. The interface is sealed so a
// prop can never be both.
type Prop interface {
	Node
	isProp()
}

// Attribute is a static attribute. Value is nil for boolean attributes.
type Attribute struct {
	Name     string
	Value    *TextNode
	Location SourceLocation
}

func (n *Attribute) Type() NodeType      { return NodeAttribute }
func (n *Attribute) Loc() SourceLocation { return n.Location }
func (n *Attribute) isProp()             {}

// Directive is a name:arg.modifiers="exp" attribute. Name is normalized
// (bind, on, if, for, model, show, or a custom name); RawName keeps the
// source spelling.
type Directive struct {
	Name      string
	RawName   string
	Arg       ExpressionNode
	Exp       ExpressionNode
	Modifiers []string
	Location  SourceLocation
}

func (n *Directive) Type() NodeType      { return NodeDirective }
func (n *Directive) Loc() SourceLocation { return n.Location }
func (n *Directive) isProp()             {}

// HasModifier reports whether mod is present in the modifier list.
func (n *Directive) HasModifier(mod string) bool {
	return containsString(n.Modifiers, mod)
}

// ExpressionNode is a *SimpleExpression or a *CompoundExpression.
type ExpressionNode interface {
	Node
	isExpression()
}

// SimpleExpression is a single JavaScript expression (or a static string
// when IsStatic is set).
type SimpleExpression struct {
	Content  string
	IsStatic bool
	Location SourceLocation
}

func (n *SimpleExpression) Type() NodeType      { return NodeSimpleExpression }
func (n *SimpleExpression) Loc() SourceLocation { return n.Location }
func (n *SimpleExpression) isExpression()       {}
func (n *SimpleExpression) compoundPart()       {}

// NewSimpleExpression creates a synthetic simple expression.
func NewSimpleExpression(content string, isStatic bool) *SimpleExpression {
	return &SimpleExpression{Content: content, IsStatic: isStatic, Location: LocStub}
}

// CompoundPart is anything a compound expression may be made of.
type CompoundPart interface {
	compoundPart()
}

// Raw is a verbatim source fragment inside a compound expression.
type Raw string

func (Raw) compoundPart() {}

// CompoundExpression is an ordered list of parts emitted back to back.
type CompoundExpression struct {
	Parts    []CompoundPart
	Location SourceLocation
}

func (n *CompoundExpression) Type() NodeType      { return NodeCompoundExpression }
func (n *CompoundExpression) Loc() SourceLocation { return n.Location }
func (n *CompoundExpression) isExpression()       {}
func (n *CompoundExpression) compoundPart()       {}

// IfNode is a v-if / v-else-if / v-else chain.
type IfNode struct {
	Branches []*IfBranchNode
	Location SourceLocation
}

func (n *IfNode) Type() NodeType      { return NodeIf }
func (n *IfNode) Loc() SourceLocation { return n.Location }

// IfBranchNode is one branch of a chain. Condition is nil for v-else.
type IfBranchNode struct {
	Condition ExpressionNode
	Children  []Node
	UserKey   Prop
	Location  SourceLocation
}

func (n *IfBranchNode) Type() NodeType      { return NodeIfBranch }
func (n *IfBranchNode) Loc() SourceLocation { return n.Location }

// ForNode is a v-for loop. Children is the loop body; when it is a single
// element that element still carries its v-for directive.
type ForNode struct {
	Source   ExpressionNode
	Value    ExpressionNode
	Key      ExpressionNode
	Index    ExpressionNode
	Children []Node
	Location SourceLocation
}

func (n *ForNode) Type() NodeType      { return NodeFor }
func (n *ForNode) Loc() SourceLocation { return n.Location }
