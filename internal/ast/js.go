package ast

// Codegen-only nodes. Codegen lowers template constructs into these when it
// needs a generic JavaScript shape (calls, object literals, arrow functions).

// Callee is either a RuntimeHelper or a plain identifier string.
type Callee struct {
	Helper RuntimeHelper
	Name   string
}

// HelperCallee refers to a runtime helper.
func HelperCallee(h RuntimeHelper) Callee { return Callee{Helper: h} }

// NamedCallee refers to an identifier in scope.
func NamedCallee(name string) Callee { return Callee{Name: name} }

// IsHelper reports whether the callee is a runtime helper.
func (c Callee) IsHelper() bool { return c.Name == "" }

// CallExpression is callee(arguments...).
type CallExpression struct {
	Callee    Callee
	Arguments []Node
	Location  SourceLocation
}

func (n *CallExpression) Type() NodeType      { return NodeJSCallExpression }
func (n *CallExpression) Loc() SourceLocation { return n.Location }

// NewCall creates a synthetic call to a runtime helper.
func NewCall(h RuntimeHelper, args ...Node) *CallExpression {
	return &CallExpression{Callee: HelperCallee(h), Arguments: args, Location: LocStub}
}

// Property is a key: value pair of an object literal. A non-static key is
// emitted as a computed [key].
type Property struct {
	Key      ExpressionNode
	Value    Node
	Location SourceLocation
}

func (n *Property) Type() NodeType      { return NodeJSProperty }
func (n *Property) Loc() SourceLocation { return n.Location }

// NewProperty creates a synthetic property with a static key.
func NewProperty(key string, value Node) *Property {
	return &Property{Key: NewSimpleExpression(key, true), Value: value, Location: LocStub}
}

// ObjectExpression is an object literal with properties in source order.
type ObjectExpression struct {
	Properties []*Property
	Location   SourceLocation
}

func (n *ObjectExpression) Type() NodeType      { return NodeJSObjectExpression }
func (n *ObjectExpression) Loc() SourceLocation { return n.Location }

// ArrayExpression is an array literal.
type ArrayExpression struct {
	Elements []Node
	Location SourceLocation
}

func (n *ArrayExpression) Type() NodeType      { return NodeJSArrayExpression }
func (n *ArrayExpression) Loc() SourceLocation { return n.Location }

// FunctionExpression is an arrow function. Either Returns (expression body)
// or Body (block body) is set.
type FunctionExpression struct {
	Params   []string
	Returns  Node
	Body     *BlockStatement
	Newline  bool
	Location SourceLocation
}

func (n *FunctionExpression) Type() NodeType      { return NodeJSFunctionExpression }
func (n *FunctionExpression) Loc() SourceLocation { return n.Location }

// ConditionalExpression is test ? consequent : alternate.
type ConditionalExpression struct {
	Test       Node
	Consequent Node
	Alternate  Node
	Newline    bool
	Location   SourceLocation
}

func (n *ConditionalExpression) Type() NodeType      { return NodeJSConditionalExpression }
func (n *ConditionalExpression) Loc() SourceLocation { return n.Location }

// CacheExpression memoizes Value in the render cache slot Index.
type CacheExpression struct {
	Index    int
	Value    Node
	IsVOnce  bool
	Location SourceLocation
}

func (n *CacheExpression) Type() NodeType      { return NodeJSCacheExpression }
func (n *CacheExpression) Loc() SourceLocation { return n.Location }

// BlockStatement is a { statement; ... } function body.
type BlockStatement struct {
	Body     []Node
	Location SourceLocation
}

func (n *BlockStatement) Type() NodeType      { return NodeJSBlockStatement }
func (n *BlockStatement) Loc() SourceLocation { return n.Location }
