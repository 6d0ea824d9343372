// Package fixture loads template trees from YAML documents. A fixture stands
// in for the parser: it describes an already parsed template together with
// the script bindings visible to it.
//
//	bindings:
//	  Foo: setup-const
//	imports:
//	  - {exp: Foo, path: ./Foo.vue}
//	children:
//	  - element: div
//	    props:
//	      - {attr: id, value: app}
//	      - {dir: on, arg: click, exp: submit, modifiers: [prevent]}
//	    children:
//	      - text: "hello "
//	      - interpolation: name
//	  - for: {source: items, value: item, key: i}
//	    children:
//	      - element: li
//	  - if:
//	      - condition: ok
//	        children: [{element: Foo}]
//	      - children: [{comment: fallback}]
package fixture

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/shared"
)

// Fixture is a decoded template tree.
type Fixture struct {
	Name     string
	Source   []byte
	Root     *ast.RootNode
	Bindings ast.BindingMetadata
}

// document mirrors the YAML layout.
type document struct {
	Bindings map[string]string `yaml:"bindings,omitempty"`
	Imports  []rawImport       `yaml:"imports,omitempty"`
	Children []rawNode         `yaml:"children"`
}

type rawImport struct {
	Exp  string `yaml:"exp"`
	Path string `yaml:"path"`
}

type rawNode struct {
	Element       string      `yaml:"element,omitempty"`
	Kind          string      `yaml:"type,omitempty"`
	NS            string      `yaml:"ns,omitempty"`
	Props         []rawProp   `yaml:"props,omitempty"`
	Text          *string     `yaml:"text,omitempty"`
	Comment       *string     `yaml:"comment,omitempty"`
	Interpolation *string     `yaml:"interpolation,omitempty"`
	If            []rawBranch `yaml:"if,omitempty"`
	For           *rawFor     `yaml:"for,omitempty"`
	Children      []rawNode   `yaml:"children,omitempty"`

	line, column int
}

type rawProp struct {
	Attr      string   `yaml:"attr,omitempty"`
	Value     *string  `yaml:"value,omitempty"`
	Dir       string   `yaml:"dir,omitempty"`
	Arg       string   `yaml:"arg,omitempty"`
	Dynamic   bool     `yaml:"dynamic,omitempty"`
	Exp       *string  `yaml:"exp,omitempty"`
	Modifiers []string `yaml:"modifiers,omitempty,flow"`

	line, column int
}

type rawBranch struct {
	Condition string    `yaml:"condition,omitempty"`
	Key       *rawProp  `yaml:"key,omitempty"`
	Children  []rawNode `yaml:"children"`

	line, column int
}

type rawFor struct {
	Source string `yaml:"source"`
	Value  string `yaml:"value,omitempty"`
	Key    string `yaml:"key,omitempty"`
	Index  string `yaml:"index,omitempty"`
}

// UnmarshalYAML records where the node starts so diagnostics can point at
// the fixture line.
func (n *rawNode) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, nodeKeys); err != nil {
		return err
	}
	type plain rawNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = rawNode(p)
	n.line, n.column = value.Line, value.Column
	return nil
}

func (p *rawProp) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, propKeys); err != nil {
		return err
	}
	type plain rawProp
	var v plain
	if err := value.Decode(&v); err != nil {
		return err
	}
	*p = rawProp(v)
	p.line, p.column = value.Line, value.Column
	return nil
}

func (b *rawBranch) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, branchKeys); err != nil {
		return err
	}
	type plain rawBranch
	var v plain
	if err := value.Decode(&v); err != nil {
		return err
	}
	*b = rawBranch(v)
	b.line, b.column = value.Line, value.Column
	return nil
}

func (f *rawFor) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, forKeys); err != nil {
		return err
	}
	type plain rawFor
	var v plain
	if err := value.Decode(&v); err != nil {
		return err
	}
	*f = rawFor(v)
	return nil
}

var (
	nodeKeys   = []string{"element", "type", "ns", "props", "text", "comment", "interpolation", "if", "for", "children"}
	propKeys   = []string{"attr", "value", "dir", "arg", "dynamic", "exp", "modifiers"}
	branchKeys = []string{"condition", "key", "children"}
	forKeys    = []string{"source", "value", "key", "index"}
)

// checkKeys rejects unknown mapping keys. Node.Decode does not inherit the
// decoder's KnownFields setting, so nested values are checked here.
func checkKeys(value *yaml.Node, allowed []string) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not found", key.Line, key.Value)
		}
	}
	return nil
}

// Load reads and decodes the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "cannot read fixture", err).
			WithLocation(path, 0, 0)
	}
	return Parse(path, data)
}

// Parse decodes a fixture document. Name is used in error locations.
func Parse(name string, data []byte) (*Fixture, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewFixtureError(fmt.Sprintf("cannot decode %s", name), err).
			WithContext("file", name)
	}

	b := &builder{name: name}
	bindings, err := b.bindings(doc.Bindings)
	if err != nil {
		return nil, err
	}
	children, err := b.nodes(doc.Children)
	if err != nil {
		return nil, err
	}

	root := ast.NewRoot(children...)
	for _, imp := range doc.Imports {
		if imp.Exp == "" || imp.Path == "" {
			return nil, b.fail(0, 0, "import needs both exp and path")
		}
		root.Imports = append(root.Imports, ast.ImportItem{Exp: imp.Exp, Path: imp.Path})
	}

	return &Fixture{Name: name, Source: data, Root: root, Bindings: bindings}, nil
}

// InferElementType classifies a tag the way the template parser does:
// template and slot are structural, native HTML and SVG tags are elements
// and anything else is a component.
func InferElementType(tag string) ast.ElementType {
	switch {
	case tag == "template":
		return ast.ElementTypeTemplate
	case tag == "slot":
		return ast.ElementTypeSlot
	case shared.IsNativeTag(tag):
		return ast.ElementTypeElement
	default:
		return ast.ElementTypeComponent
	}
}
