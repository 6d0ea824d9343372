package fixture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/shared"
)

var bindingTypes = map[string]ast.BindingType{
	string(ast.BindingSetupConst):         ast.BindingSetupConst,
	string(ast.BindingSetupReactiveConst): ast.BindingSetupReactiveConst,
	string(ast.BindingSetupMaybeRef):      ast.BindingSetupMaybeRef,
	string(ast.BindingSetupRef):           ast.BindingSetupRef,
	string(ast.BindingSetupLet):           ast.BindingSetupLet,
	string(ast.BindingProps):              ast.BindingProps,
	string(ast.BindingData):               ast.BindingData,
	string(ast.BindingOptions):            ast.BindingOptions,
}

var elementTypes = map[string]ast.ElementType{
	"element":   ast.ElementTypeElement,
	"component": ast.ElementTypeComponent,
	"slot":      ast.ElementTypeSlot,
	"template":  ast.ElementTypeTemplate,
}

var namespaces = map[string]ast.Namespace{
	"html":   ast.NamespaceHTML,
	"svg":    ast.NamespaceSVG,
	"mathml": ast.NamespaceMathML,
}

// builder turns decoded YAML into AST nodes.
type builder struct {
	name string
}

func (b *builder) fail(line, column int, format string, args ...interface{}) *errors.CompilerError {
	msg := fmt.Sprintf(format, args...)
	if line > 0 {
		msg = fmt.Sprintf("%s:%d:%d: %s", b.name, line, column, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", b.name, msg)
	}
	return errors.NewFixtureError(msg, nil).WithLocation(b.name, line, column)
}

func (b *builder) loc(line, column int) ast.SourceLocation {
	if line == 0 {
		return ast.LocStub
	}
	pos := ast.Position{Line: line, Column: column}
	return ast.SourceLocation{Start: pos, End: pos, Source: b.name}
}

func (b *builder) bindings(raw map[string]string) (ast.BindingMetadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(ast.BindingMetadata, len(raw))
	for _, name := range names {
		bt, ok := bindingTypes[raw[name]]
		if !ok {
			return nil, b.fail(0, 0, "binding %q has unknown type %q", name, raw[name])
		}
		out[name] = bt
	}
	return out, nil
}

func (b *builder) nodes(raw []rawNode) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(raw))
	for i := range raw {
		n, err := b.node(&raw[i])
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func kinds(n *rawNode) []string {
	var set []string
	if n.Element != "" {
		set = append(set, "element")
	}
	if n.Text != nil {
		set = append(set, "text")
	}
	if n.Comment != nil {
		set = append(set, "comment")
	}
	if n.Interpolation != nil {
		set = append(set, "interpolation")
	}
	if n.If != nil {
		set = append(set, "if")
	}
	if n.For != nil {
		set = append(set, "for")
	}
	return set
}

func (b *builder) node(n *rawNode) (ast.Node, error) {
	set := kinds(n)
	switch len(set) {
	case 0:
		return nil, b.fail(n.line, n.column,
			"node needs one of element, text, comment, interpolation, if or for")
	case 1:
	default:
		return nil, b.fail(n.line, n.column, "node mixes %s", strings.Join(set, " and "))
	}

	loc := b.loc(n.line, n.column)
	switch set[0] {
	case "element":
		return b.element(n, loc)
	case "text":
		return &ast.TextNode{Content: *n.Text, Location: loc}, nil
	case "comment":
		return &ast.CommentNode{Content: *n.Comment, Location: loc}, nil
	case "interpolation":
		return &ast.InterpolationNode{Content: b.exp(*n.Interpolation, loc), Location: loc}, nil
	case "if":
		return b.ifNode(n, loc)
	default:
		return b.forNode(n, loc)
	}
}

func (b *builder) element(n *rawNode, loc ast.SourceLocation) (ast.Node, error) {
	el := &ast.ElementNode{Tag: n.Element, TagType: InferElementType(n.Element), Location: loc}
	if n.Kind != "" {
		t, ok := elementTypes[n.Kind]
		if !ok {
			return nil, b.fail(n.line, n.column, "unknown element type %q", n.Kind)
		}
		el.TagType = t
	}
	switch {
	case n.NS != "":
		ns, ok := namespaces[n.NS]
		if !ok {
			return nil, b.fail(n.line, n.column, "unknown namespace %q", n.NS)
		}
		el.NS = ns
	default:
		el.NS = inferNamespace(n.Element)
	}

	for i := range n.Props {
		p, err := b.prop(&n.Props[i])
		if err != nil {
			return nil, err
		}
		el.Props = append(el.Props, p)
	}

	children, err := b.nodes(n.Children)
	if err != nil {
		return nil, err
	}
	el.Children = children
	return el, nil
}

func (b *builder) prop(p *rawProp) (ast.Prop, error) {
	loc := b.loc(p.line, p.column)
	switch {
	case p.Attr != "" && p.Dir != "":
		return nil, b.fail(p.line, p.column, "prop is both attr %q and dir %q", p.Attr, p.Dir)
	case p.Attr != "":
		attr := &ast.Attribute{Name: p.Attr, Location: loc}
		if p.Value != nil {
			attr.Value = &ast.TextNode{Content: *p.Value, Location: loc}
		}
		return attr, nil
	case p.Dir != "":
		name := strings.TrimPrefix(p.Dir, "v-")
		dir := &ast.Directive{
			Name:      name,
			RawName:   rawDirectiveName(name, p.Arg, p.Dynamic, p.Modifiers),
			Modifiers: p.Modifiers,
			Location:  loc,
		}
		if p.Arg != "" {
			dir.Arg = &ast.SimpleExpression{Content: p.Arg, IsStatic: !p.Dynamic, Location: loc}
		}
		if p.Exp != nil {
			dir.Exp = b.exp(*p.Exp, loc)
		}
		return dir, nil
	default:
		return nil, b.fail(p.line, p.column, "prop needs attr or dir")
	}
}

func rawDirectiveName(name, arg string, dynamic bool, mods []string) string {
	var sb strings.Builder
	sb.WriteString("v-")
	sb.WriteString(name)
	if arg != "" {
		sb.WriteByte(':')
		if dynamic {
			sb.WriteString("[" + arg + "]")
		} else {
			sb.WriteString(arg)
		}
	}
	for _, m := range mods {
		sb.WriteByte('.')
		sb.WriteString(m)
	}
	return sb.String()
}

func (b *builder) exp(content string, loc ast.SourceLocation) *ast.SimpleExpression {
	return &ast.SimpleExpression{Content: content, Location: loc}
}

func (b *builder) ifNode(n *rawNode, loc ast.SourceLocation) (ast.Node, error) {
	if len(n.If) == 0 {
		return nil, b.fail(n.line, n.column, "if needs at least one branch")
	}
	if len(n.Children) > 0 {
		return nil, b.fail(n.line, n.column, "if children belong to its branches")
	}

	node := &ast.IfNode{Location: loc}
	for i := range n.If {
		raw := &n.If[i]
		if raw.Condition == "" && i != len(n.If)-1 {
			return nil, b.fail(raw.line, raw.column, "else branch must be last")
		}
		branch := &ast.IfBranchNode{Location: b.loc(raw.line, raw.column)}
		if raw.Condition != "" {
			branch.Condition = b.exp(raw.Condition, branch.Location)
		}
		if raw.Key != nil {
			key, err := b.prop(raw.Key)
			if err != nil {
				return nil, err
			}
			branch.UserKey = key
		}
		children, err := b.nodes(raw.Children)
		if err != nil {
			return nil, err
		}
		branch.Children = children
		node.Branches = append(node.Branches, branch)
	}
	return node, nil
}

func (b *builder) forNode(n *rawNode, loc ast.SourceLocation) (ast.Node, error) {
	if len(n.Children) == 0 {
		return nil, b.fail(n.line, n.column, "for needs a body")
	}
	node := &ast.ForNode{Location: loc}
	if n.For.Source != "" {
		node.Source = b.exp(n.For.Source, loc)
	}
	if n.For.Value != "" {
		node.Value = b.exp(n.For.Value, loc)
	}
	if n.For.Key != "" {
		node.Key = b.exp(n.For.Key, loc)
	}
	if n.For.Index != "" {
		node.Index = b.exp(n.For.Index, loc)
	}

	children, err := b.nodes(n.Children)
	if err != nil {
		return nil, err
	}
	node.Children = children
	return node, nil
}

// inferNamespace places the svg root and SVG-only tags in the SVG
// namespace. Tags both vocabularies share, such as a, stay HTML.
func inferNamespace(tag string) ast.Namespace {
	if tag == "svg" || shared.IsSVGTag(tag) && !shared.IsHTMLTag(tag) {
		return ast.NamespaceSVG
	}
	return ast.NamespaceHTML
}
