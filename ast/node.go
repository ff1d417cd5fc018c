// Package ast defines the syntax tree produced by the parser and consumed
// by the walker.
//
// A Node is a single struct for every node type. Which fields are set
// depends on Type; the child edges of each type are listed by Edges.
// Every child edge is either nil or a non-empty slice, never an empty one.
package ast

import (
	"github.com/dhamidi/bannockburn/lexer"
)

type NodeType int

const (
	// Token is a raw token that no production has claimed yet.
	Token NodeType = iota
	Identifier
	Literal
	ObjRefLiteral
	ThisExpression
	LabelStatement
	Parameter
	FunctionDeclaration
	VariableDeclaration
	VariableDeclarator
	UnaryExpression
	ConditionalExpression
	MemberExpression
	RangeExpression
	IndexExpression
	CallExpression
	ListExpression
	XLateExpression
	BinaryExpression
	LogicalExpression
	RelationalExpression
	AssignmentExpression
	IfStatement
	ElseifStatement
	ReturnStatement
	BreakStatement
	BreakIfStatement
	ContinueStatement
	ContinueIfStatement
	WhileStatement
	RepeatStatement
	ForCStyleStatement
	ForStatement
	ForInStatement
	SwitchStatement
	SwitchCase
	GotoStatement
	ExpressionStatement
)

var nodeTypeNames = map[NodeType]string{
	Token:                 "Token",
	Identifier:            "Identifier",
	Literal:               "Literal",
	ObjRefLiteral:         "ObjRefLiteral",
	ThisExpression:        "ThisExpression",
	LabelStatement:        "LabelStatement",
	Parameter:             "Parameter",
	FunctionDeclaration:   "FunctionDeclaration",
	VariableDeclaration:   "VariableDeclaration",
	VariableDeclarator:    "VariableDeclarator",
	UnaryExpression:       "UnaryExpression",
	ConditionalExpression: "ConditionalExpression",
	MemberExpression:      "MemberExpression",
	RangeExpression:       "RangeExpression",
	IndexExpression:       "IndexExpression",
	CallExpression:        "CallExpression",
	ListExpression:        "ListExpression",
	XLateExpression:       "XLateExpression",
	BinaryExpression:      "BinaryExpression",
	LogicalExpression:     "LogicalExpression",
	RelationalExpression:  "RelationalExpression",
	AssignmentExpression:  "AssignmentExpression",
	IfStatement:           "IfStatement",
	ElseifStatement:       "ElseifStatement",
	ReturnStatement:       "ReturnStatement",
	BreakStatement:        "BreakStatement",
	BreakIfStatement:      "BreakIfStatement",
	ContinueStatement:     "ContinueStatement",
	ContinueIfStatement:   "ContinueIfStatement",
	WhileStatement:        "WhileStatement",
	RepeatStatement:       "RepeatStatement",
	ForCStyleStatement:    "ForCStyleStatement",
	ForStatement:          "ForStatement",
	ForInStatement:        "ForInStatement",
	SwitchStatement:       "SwitchStatement",
	SwitchCase:            "SwitchCase",
	GotoStatement:         "GotoStatement",
	ExpressionStatement:   "ExpressionStatement",
}

var nodeTypesByName = func() map[string]NodeType {
	m := make(map[string]NodeType, len(nodeTypeNames))
	for t, name := range nodeTypeNames {
		m[name] = t
	}
	return m
}()

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseNodeType looks up a node type by its name.
func ParseNodeType(name string) (NodeType, bool) {
	t, ok := nodeTypesByName[name]
	return t, ok
}

// Arity classifies a node the way the parser saw it: "name", "literal",
// "operator", "unary", "binary", "ternary", "statement", "function",
// "this", or the id of a keyword.
type Arity = string

type Node struct {
	Type  NodeType
	ID    string
	Arity Arity
	Value string
	Range lexer.Range
	Loc   lexer.Location

	Operator string
	Prefix   bool
	Computed bool
	Declared bool
	Label    bool
	Function bool
	NoDebug  bool
	Variadic bool

	// Name is the function name of a FunctionDeclaration.
	Name       string
	ReturnType string
	// Direction is "to" or "downto" for a counted for loop.
	Direction string
	// Xlate is the dotted name inside an XLateExpression.
	Xlate string

	Left         *Node
	Right        *Node
	Object       *Node
	Property     *Node
	Callee       *Node
	Index        *Node
	FromIndex    *Node
	ToIndex      *Node
	Argument     *Node
	Expression   *Node
	Init         *Node
	Default      *Node
	Discriminant *Node
	Test         *Node
	First        *Node
	Second       *Node
	Third        *Node
	Increment    *Node
	DataType     *Node
	// Ident is the name token of a declarator, parameter or function.
	Ident *Node

	Params       []*Node
	Body         []*Node
	Declarations []*Node
	Arguments    []*Node
	Elements     []*Node
	Cases        []*Node
	// Tests holds the values of a case; nil for default.
	Tests      []*Node
	Consequent []*Node
	// Alternate holds the else branch, or a single ElseifStatement.
	Alternate []*Node

	// Scope is the lexical scope a declaration or top-level statement
	// belongs to.
	Scope *Scope
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Type == Token || n.Type == Identifier || n.Type == Literal {
		return n.Value
	}
	return n.Type.String()
}

// Start returns the offset of the first character of n.
func (n *Node) Start() int { return n.Range[0] }

// End returns the offset of the last character of n.
func (n *Node) End() int { return n.Range[1] }
