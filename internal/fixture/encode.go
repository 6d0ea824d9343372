package fixture

import (
	"bytes"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
)

// Marshal encodes a template tree back into the fixture layout. Element
// types and namespaces are written only when inference would not recover
// them, so Parse(Marshal(root)) rebuilds an equivalent tree.
func Marshal(root *ast.RootNode, bindings ast.BindingMetadata) ([]byte, error) {
	doc := document{Children: []rawNode{}}
	if len(bindings) > 0 {
		doc.Bindings = make(map[string]string, len(bindings))
		for name, bt := range bindings {
			doc.Bindings[name] = string(bt)
		}
	}
	for _, imp := range root.Imports {
		doc.Imports = append(doc.Imports, rawImport(imp))
	}
	for _, child := range root.Children {
		raw, err := encodeNode(child)
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, raw)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.NewFixtureError("cannot encode template tree", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.NewFixtureError("cannot encode template tree", err)
	}
	return buf.Bytes(), nil
}

func encodeNodes(nodes []ast.Node) ([]rawNode, error) {
	var out []rawNode
	for _, n := range nodes {
		raw, err := encodeNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func encodeNode(n ast.Node) (rawNode, error) {
	switch node := n.(type) {
	case *ast.ElementNode:
		return encodeElement(node)
	case *ast.TextNode:
		return rawNode{Text: ptr(node.Content)}, nil
	case *ast.CommentNode:
		return rawNode{Comment: ptr(node.Content)}, nil
	case *ast.InterpolationNode:
		return rawNode{Interpolation: ptr(ast.ExpressionText(node.Content))}, nil
	case *ast.IfNode:
		raw := rawNode{If: []rawBranch{}}
		for _, branch := range node.Branches {
			rb := rawBranch{Condition: ast.ExpressionText(branch.Condition)}
			if branch.UserKey != nil {
				key := encodeProp(branch.UserKey)
				rb.Key = &key
			}
			children, err := encodeNodes(branch.Children)
			if err != nil {
				return rawNode{}, err
			}
			rb.Children = children
			raw.If = append(raw.If, rb)
		}
		return raw, nil
	case *ast.ForNode:
		children, err := encodeNodes(node.Children)
		if err != nil {
			return rawNode{}, err
		}
		return rawNode{
			For: &rawFor{
				Source: ast.ExpressionText(node.Source),
				Value:  ast.ExpressionText(node.Value),
				Key:    ast.ExpressionText(node.Key),
				Index:  ast.ExpressionText(node.Index),
			},
			Children: children,
		}, nil
	default:
		return rawNode{}, errors.NewFixtureError(
			"cannot encode "+n.Type().String()+" node", nil)
	}
}

func encodeElement(el *ast.ElementNode) (rawNode, error) {
	raw := rawNode{Element: el.Tag}
	if InferElementType(el.Tag) != el.TagType {
		raw.Kind = el.TagType.String()
	}
	if el.NS != inferNamespace(el.Tag) {
		raw.NS = el.NS.String()
	}
	for _, p := range el.Props {
		raw.Props = append(raw.Props, encodeProp(p))
	}
	children, err := encodeNodes(el.Children)
	if err != nil {
		return rawNode{}, err
	}
	raw.Children = children
	return raw, nil
}

func encodeProp(p ast.Prop) rawProp {
	switch prop := p.(type) {
	case *ast.Attribute:
		raw := rawProp{Attr: prop.Name}
		if prop.Value != nil {
			raw.Value = ptr(prop.Value.Content)
		}
		return raw
	case *ast.Directive:
		raw := rawProp{Dir: prop.Name, Modifiers: prop.Modifiers}
		if prop.Arg != nil {
			raw.Arg = ast.ExpressionText(prop.Arg)
			raw.Dynamic = !ast.IsStaticExp(prop.Arg)
		}
		if prop.Exp != nil {
			raw.Exp = ptr(ast.ExpressionText(prop.Exp))
		}
		return raw
	}
	return rawProp{}
}

// SortedBindingNames lists binding names in a stable order for display.
func SortedBindingNames(bindings ast.BindingMetadata) []string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ptr(s string) *string { return &s }
