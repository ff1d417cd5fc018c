package parser

import (
	"regexp"

	"github.com/dhamidi/bannockburn/ast"
)

type (
	nudFunc func(s *session, self *ast.Node) *ast.Node
	ledFunc func(s *session, self, left *ast.Node) *ast.Node
	stdFunc func(s *session, self *ast.Node) *ast.Node
)

// symbol is the grammar behavior shared by every token with the same id.
type symbol struct {
	id           string
	lbp          int
	nud          nudFunc
	led          ledFunc
	std          stdFunc
	reservedWord bool
	// value replaces the token value of constants.
	value string
}

type symbolTable map[string]*symbol

// symbol returns the entry for id, creating it if needed. A higher
// binding power replaces a lower one.
func (t symbolTable) symbol(id string, bp int) *symbol {
	if s, ok := t[id]; ok {
		if bp >= s.lbp {
			s.lbp = bp
		}
		return s
	}
	s := &symbol{id: id, value: id, lbp: bp}
	t[id] = s
	return s
}

var operatorTypes = map[string]ast.NodeType{
	"||": ast.LogicalExpression,
	"&&": ast.LogicalExpression,
	"^^": ast.LogicalExpression,
	"==": ast.RelationalExpression,
	"<":  ast.RelationalExpression,
	"<=": ast.RelationalExpression,
	">=": ast.RelationalExpression,
	">":  ast.RelationalExpression,
}

func binaryType(op string) ast.NodeType {
	if t, ok := operatorTypes[op]; ok {
		return t
	}
	return ast.BinaryExpression
}

func (t symbolTable) infix(id string, bp int) {
	t.symbol(id, bp).led = binary(bp)
}

// infixr makes id right associative.
func (t symbolTable) infixr(id string, bp int) {
	t.symbol(id, bp).led = binary(bp - 1)
}

func binary(rbp int) ledFunc {
	return func(s *session, self, left *ast.Node) *ast.Node {
		self.Left = left
		self.Right = s.expression(rbp)
		self.Arity = "binary"
		self.Type = binaryType(self.ID)
		self.Operator = self.ID
		return span(self, self.Left, self.Right)
	}
}

func (t symbolTable) assignment(id string) {
	t.symbol(id, 10).led = func(s *session, self, left *ast.Node) *ast.Node {
		switch {
		case left.ID == "." || left.ID == "[" || left.ID == "$" || left.ID == "$$":
		case left.Arity == "name":
		default:
			fail(left, "Bad lvalue.")
		}
		self.Left = left
		self.Right = s.expression(9)
		self.Arity = "binary"
		self.Type = ast.AssignmentExpression
		self.Operator = self.ID
		return span(self, self.Left, self.Right)
	}
}

// prefix registers a unary operator whose operand binds at rbp.
func (t symbolTable) prefix(id string, rbp int) {
	t.symbol(id, 0).nud = func(s *session, self *ast.Node) *ast.Node {
		self.Argument = s.expression(rbp)
		return unary(self)
	}
}

func unary(self *ast.Node) *ast.Node {
	self.Arity = "unary"
	self.Type = ast.UnaryExpression
	self.Operator = self.ID
	self.Prefix = true
	return span(self, self, self.Argument)
}

// global registers a global variable sigil. A plain name after it is the
// variable name, taken literally.
func (t symbolTable) global(id string) {
	t.symbol(id, 0).nud = func(s *session, self *ast.Node) *ast.Node {
		if s.tok.node.Arity == "name" {
			self.Argument = s.tok.node
			self.Argument.Arity = "literal"
			s.advance("")
		} else {
			self.Argument = s.expression(90)
		}
		return unary(self)
	}
}

func (t symbolTable) constant(id, value string) {
	c := t.symbol(id, 0)
	c.value = value
	c.nud = func(s *session, self *ast.Node) *ast.Node {
		self.Value = value
		self.Arity = "literal"
		self.Type = ast.Literal
		return self
	}
}

func (t symbolTable) stmt(id string, std stdFunc) {
	x := t.symbol(id, 0)
	x.nud = func(s *session, self *ast.Node) *ast.Node {
		fail(self, id+" statement not expected here")
		return nil
	}
	x.std = std
}

func itself(s *session, self *ast.Node) *ast.Node {
	return self
}

var hexPattern = regexp.MustCompile(`^[a-fA-F0-9]+$`)

func (p *Parser) buildSymbols() symbolTable {
	t := symbolTable{}

	for _, typ := range p.features.BuiltinTypes {
		t.symbol(typ, 0)
	}

	for _, id := range []string{
		idNewline, "end", idEnd, idName, "...", ":", ";", ")", "]", "}", ",",
		"else", "until", "case", "default", "to", "downto", "by",
	} {
		t.symbol(id, 0)
	}

	t.constant("true", "true")
	t.constant("false", "false")
	t.constant("undefined", "undefined")

	t.symbol(idLiteral, 0).nud = itself
	t.symbol("this", 0).nud = func(s *session, self *ast.Node) *ast.Node {
		self.Arity = "this"
		self.Type = ast.ThisExpression
		return self
	}

	for _, op := range []string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^="} {
		t.assignment(op)
	}

	t.symbol("?", 20).led = conditional

	for _, op := range []string{"&", "|", "^"} {
		t.infixr(op, 15)
	}
	for _, op := range []string{"&&", "||", "^^"} {
		t.infixr(op, 30)
	}
	for _, op := range []string{"==", "!=", "<>", "<", "<=", ">", ">="} {
		t.infixr(op, 40)
	}
	t.infixr("<<", 45)
	t.infixr(">>", 45)

	for _, op := range []string{"in", "+", "-"} {
		t.infix(op, 50)
	}
	for _, op := range []string{"*", "/", "%"} {
		t.infix(op, 60)
	}

	dot := t.symbol(".", 80)
	dot.nud = func(s *session, self *ast.Node) *ast.Node { return member(s, self, nil) }
	dot.led = member

	bracket := t.symbol("[", 80)
	bracket.nud = xlate
	bracket.led = subscript

	t.symbol("(", 80).led = call

	t.global("$$")
	t.global("$")

	t.prefix("!", 70)
	t.prefix("-", 70)
	t.prefix("~", 70)

	t.symbol("#", 0).nud = objRef
	t.symbol("{", 0).nud = list
	t.symbol("(", 0).nud = group

	t.stmt("function", functionStatement)
	t.stmt("if", ifStatement)
	t.stmt("elseif", ifStatement)
	t.stmt("return", returnStatement)
	t.stmt("break", breakStatement)
	t.stmt("breakif", conditionalJump(ast.BreakIfStatement))
	t.stmt("continue", continueStatement)
	t.stmt("continueif", conditionalJump(ast.ContinueIfStatement))
	t.stmt("while", whileStatement)
	t.stmt("repeat", repeatStatement)
	t.stmt("for", forStatement)
	t.stmt("switch", switchStatement)
	t.stmt("goto", gotoStatement)

	for _, r := range p.features.ReservedWords {
		if sym, ok := t[r]; ok {
			sym.reservedWord = true
		}
	}
	return t
}

func conditional(s *session, self, left *ast.Node) *ast.Node {
	self.Test = left
	consequent := s.expression(0)
	s.advance(":")
	alternate := s.expression(0)
	self.Consequent = []*ast.Node{consequent}
	self.Alternate = []*ast.Node{alternate}
	self.Type = ast.ConditionalExpression
	self.Arity = "ternary"
	return span(self, self.Test, alternate)
}

// member parses "a.b", "a.(expr)" and, with a nil left, the implied
// "this" forms ".b" and ".(expr)". Any token may follow the dot as a
// property name.
func member(s *session, self, left *ast.Node) *ast.Node {
	self.Object = left
	start := self
	if left != nil {
		start = left
	}

	if s.tok.node.ID == "(" {
		s.advance("(")
		self.Property = s.expression(10)
		self.Computed = true
		end := s.tok.node
		s.advance(")")
		span(self, start, end)
	} else {
		prop := s.tok.node
		prop.Arity = "literal"
		if prop.Type == ast.Token {
			prop.Type = ast.Identifier
		}
		self.Property = prop
		s.advance("")
		span(self, start, prop)
	}

	self.Type = ast.MemberExpression
	self.Arity = "binary"
	return self
}

// xlate parses a translation reference such as [Object.Message].
func xlate(s *session, self *ast.Node) *ast.Node {
	var name string
	for s.tok.node.ID == "." || s.tok.node.Arity == "name" {
		name += s.tok.node.Value
		s.advance("")
	}
	end := s.tok.node
	s.advance("]")

	self.Xlate = name
	self.ID = "xlate"
	self.Arity = "unary"
	self.Type = ast.XLateExpression
	return span(self, self, end)
}

// subscript parses a[i], a[i:j], a[i:], a[:j] and a[:].
func subscript(s *session, self, left *ast.Node) *ast.Node {
	self.Object = left

	if s.tok.node.ID == ":" {
		self.Type = ast.RangeExpression
		s.advance(":")
		if s.tok.node.ID != "]" {
			self.ToIndex = s.expression(0)
		}
	} else {
		e := s.expression(0)
		if s.tok.node.ID == ":" {
			self.Type = ast.RangeExpression
			self.FromIndex = e
			s.advance(":")
			if s.tok.node.ID != "]" {
				self.ToIndex = s.expression(0)
			}
		} else {
			self.Type = ast.IndexExpression
			self.Index = e
		}
	}

	self.Arity = "binary"
	end := s.tok.node
	s.advance("]")
	return span(self, self.Object, end)
}

func call(s *session, self, left *ast.Node) *ast.Node {
	self.Arity = "binary"
	self.Callee = left
	self.Type = ast.CallExpression

	switch left.ID {
	case ".", "[", "(", "&&", "||", "?", "$", "$$":
	default:
		if left.Arity != "name" {
			fail(left, "Expected a variable name.")
		}
	}

	self.Arguments = s.expressionList(")")
	end := s.tok.node
	s.advance(")")
	return span(self, self.Callee, end)
}

// expressionList parses comma separated expressions up to, but not
// including, the closing id.
func (s *session) expressionList(closing string) []*ast.Node {
	var a []*ast.Node
	if s.tok.node.ID == closing {
		return nil
	}
	for {
		a = append(a, s.expression(0))
		if s.tok.node.ID != "," {
			break
		}
		s.advance(",")
	}
	return a
}

// objRef parses '#' followed by hex digits that the lexer read as a name.
func objRef(s *session, self *ast.Node) *ast.Node {
	next := s.tok.node
	if next.Arity != "name" || !hexPattern.MatchString(next.Value) {
		fail(next, "Expected hexadecimal value")
	}
	self.Arity = "literal"
	self.Value = "#" + next.Value
	self.ID = idLiteral
	self.Type = ast.ObjRefLiteral
	span(self, self, next)
	s.advance("")
	return self
}

func list(s *session, self *ast.Node) *ast.Node {
	self.Elements = s.expressionList("}")
	end := s.tok.node
	s.advance("}")
	self.Arity = "unary"
	self.Type = ast.ListExpression
	return span(self, self, end)
}

// group parses a parenthesized expression. The inner node is returned
// with its range widened to the parentheses.
func group(s *session, self *ast.Node) *ast.Node {
	e := s.expression(0)
	end := s.tok.node
	s.advance(")")
	return span(e, self, end)
}
