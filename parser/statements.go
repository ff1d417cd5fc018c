package parser

import (
	"strings"

	"github.com/dhamidi/bannockburn/ast"
)

// statements parses a block up to a closing keyword. It returns nil for
// an empty block.
func (s *session) statements() []*ast.Node {
	var a []*ast.Node
	for {
		switch s.tok.node.ID {
		case "end", idEnd, "else", "elseif", "until":
			return a
		}

		if s.scope.Parent == nil && !s.scope.Pseudo && s.tok.node.Arity != "function" {
			fail(s.tok.node, "Statements must be within a function or at the beginning of a script.")
		}

		st := s.statement()
		if st == nil {
			continue
		}
		if s.scope.Pseudo {
			st.Scope = s.scope
		}
		a = append(a, st)
	}
}

func (s *session) statement() *ast.Node {
	n := s.tok

	if n.node.Arity == "name" {
		s.advance("")

		if s.tok.node.ID == ":" {
			s.advance(":")
			s.label(n.node)
			n.node.Label = true
			n.node.Type = ast.LabelStatement
			s.skipNewlines()
			return n.node
		}

		if s.p.isBuiltinType(n.node.Value) && !n.node.Declared {
			switch {
			case s.tok.node.Arity == "name":
				return s.declaration(n.node)
			case s.tok.node.ID == idNewline:
				// A type name alone on a line does nothing.
				s.eos()
				return &ast.Node{
					Type:       ast.ExpressionStatement,
					Arity:      "statement",
					Range:      n.node.Range,
					Loc:        n.node.Loc,
					Expression: n.node,
				}
			}
		}

		s.reverse()
	}

	if n.sym.std != nil {
		s.advance("")
		return n.sym.std(s, n.node)
	}
	return s.expressionStatement()
}

func (s *session) expressionStatement() *ast.Node {
	v := s.expression(0)
	s.eos()
	return &ast.Node{
		Type:       ast.ExpressionStatement,
		Arity:      "statement",
		Range:      v.Range,
		Loc:        v.Loc,
		Expression: v,
	}
}

func (s *session) declaration(varType *ast.Node) *ast.Node {
	decl := &ast.Node{
		Type:     ast.VariableDeclaration,
		Arity:    "statement",
		DataType: varType,
	}

	var last *ast.Node
	for {
		n := s.tok.node
		if n.Arity != "name" {
			fail(n, "Expected a new variable name.")
		}
		d := &ast.Node{
			Type:     ast.VariableDeclarator,
			Arity:    "declarator",
			Ident:    n,
			DataType: varType,
		}
		s.define(s.scope, n)
		s.advance("")
		last = n

		if s.tok.node.ID == "=" {
			s.advance("=")
			d.Init = s.expression(0)
			last = d.Init
		}
		span(d, n, last)
		decl.Declarations = append(decl.Declarations, d)

		if s.tok.node.ID != "," {
			break
		}
		s.advance(",")
	}

	s.eos()
	return span(decl, varType, last)
}

func functionStatement(s *session, self *ast.Node) *ast.Node {
	if s.scope.Parent != nil && s.scope.Pseudo {
		s.popScope()
	} else if s.scope.Parent != nil {
		fail(s.tok.node, "Functions cannot be nested")
	}
	s.pushScope()

	if s.tok.node.Arity == "name" && strings.EqualFold(s.tok.node.Value, "nodebug") {
		self.NoDebug = true
		s.advance("")
	}

	// The first name is the return type when a second name follows it.
	first := s.tok.node
	if first.Arity != "name" {
		fail(first, "Expected name of function or return type")
	}
	s.advance("")
	self.Scope = s.scope

	nameTok := first
	if s.tok.node.Arity == "name" {
		nameTok = s.tok.node
		self.ReturnType = first.Value
		self.DataType = first
		s.advance("")
	}
	self.Name = nameTok.Value
	self.Ident = nameTok
	nameTok.Function = true
	s.define(s.scope.Parent, nameTok)

	s.advance("(")
	self.Params = s.parameters(self)
	s.advance(")")
	s.eos()

	self.Body = s.statements()
	end := s.tok.node
	s.advance("end")
	s.eos()
	s.popScope()

	self.Type = ast.FunctionDeclaration
	self.Arity = "function"
	return span(self, self, end)
}

// parameters parses "[Type] name [= default]" entries. A trailing
// "..." makes the function variadic.
func (s *session) parameters(fn *ast.Node) []*ast.Node {
	var a []*ast.Node
	if s.tok.node.ID == ")" {
		return nil
	}
	for {
		tok := s.tok.node
		if tok.Arity == "operator" && tok.Value == "..." {
			tok.Type = ast.Parameter
			tok.Variadic = true
			fn.Variadic = true
			a = append(a, tok)
			s.advance("")
			break
		}
		if tok.Arity != "name" {
			fail(tok, "Expected a parameter definition.")
		}

		varType := tok
		s.advance("")
		param := &ast.Node{Type: ast.Parameter, Arity: "parameter"}

		varName := varType
		if s.tok.node.Arity == "name" {
			varName = s.tok.node
			param.DataType = varType
			s.advance("")
		}
		s.define(s.scope, varName)
		param.Ident = varName
		span(param, varType, varName)

		if s.tok.node.ID == "=" {
			s.advance("=")
			param.Default = s.expression(0)
			span(param, varType, param.Default)
		}
		a = append(a, param)

		if s.tok.node.ID != "," {
			break
		}
		s.advance(",")
	}
	return a
}

func ifStatement(s *session, self *ast.Node) *ast.Node {
	self.Type = ast.IfStatement
	if self.ID == "elseif" {
		self.Type = ast.ElseifStatement
	}
	self.Arity = "statement"

	self.Test = s.expression(0)
	s.eos()

	s.pushScope()
	self.Consequent = s.statements()
	s.popScope()

	s.skipNewlines()

	switch s.tok.node.ID {
	case "elseif":
		// The elseif consumes the closing end of the whole chain.
		alt := s.statement()
		self.Alternate = []*ast.Node{alt}
		return span(self, self, alt)
	case "else":
		s.advance("else")
		s.eos()
		s.pushScope()
		self.Alternate = s.statements()
		s.popScope()
	}

	end := s.tok.node
	s.advance("end")
	s.eos()
	return span(self, self, end)
}

// checkReachable rejects a statement following a jump in the same block
// when unreachable code errors are enabled.
func (s *session) checkReachable() {
	if !s.p.options.UnreachableCodeErrors {
		return
	}
	switch s.tok.node.ID {
	case "end", "elseif", "else", idEnd, "until":
		return
	}
	fail(s.tok.node, "Unreachable statement.")
}

func returnStatement(s *session, self *ast.Node) *ast.Node {
	if s.tok.node.ID != idNewline {
		self.Argument = s.expression(0)
	}
	s.eos()
	s.checkReachable()

	self.Type = ast.ReturnStatement
	self.Arity = "statement"
	if self.Argument != nil {
		span(self, self, self.Argument)
	}
	return self
}

func breakStatement(s *session, self *ast.Node) *ast.Node {
	s.eos()
	s.checkReachable()
	self.Type = ast.BreakStatement
	self.Arity = "statement"
	return self
}

func continueStatement(s *session, self *ast.Node) *ast.Node {
	s.eos()
	s.checkReachable()
	self.Type = ast.ContinueStatement
	self.Arity = "statement"
	return self
}

func conditionalJump(typ ast.NodeType) stdFunc {
	return func(s *session, self *ast.Node) *ast.Node {
		self.Argument = s.expression(0)
		s.eos()
		self.Type = typ
		self.Arity = "statement"
		return span(self, self, self.Argument)
	}
}

// block parses statements in a new scope.
func (s *session) block() []*ast.Node {
	s.pushScope()
	defer s.popScope()
	return s.statements()
}

// closeBlock consumes the end keyword of a block and its terminator.
func (s *session) closeBlock(self *ast.Node) *ast.Node {
	end := s.tok.node
	s.advance("end")
	s.eos()
	self.Arity = "statement"
	return span(self, self, end)
}

func whileStatement(s *session, self *ast.Node) *ast.Node {
	self.Test = s.expression(0)
	s.eos()
	self.Body = s.block()
	self.Type = ast.WhileStatement
	return s.closeBlock(self)
}

func repeatStatement(s *session, self *ast.Node) *ast.Node {
	s.eos()
	self.Body = s.block()
	s.advance("until")
	self.Test = s.expression(0)
	s.eos()

	self.Type = ast.RepeatStatement
	self.Arity = "statement"
	return span(self, self, self.Test)
}

func forStatement(s *session, self *ast.Node) *ast.Node {
	switch {
	case s.tok.node.ID == "(":
		s.advance("(")
		if s.tok.node.ID != idNewline {
			self.First = s.expression(0)
		}
		s.advance(idNewline)
		if s.tok.node.ID != idNewline {
			self.Second = s.expression(0)
		}
		s.advance(idNewline)
		if s.tok.node.ID != ")" {
			self.Third = s.expression(0)
		}
		s.advance(")")
		s.eos()

		self.Body = s.block()
		self.ID = "for_c"
		self.Type = ast.ForCStyleStatement

	case s.tok.node.Arity == "name":
		self.First = s.tok.node
		s.advance("")

		switch s.tok.node.ID {
		case "=":
			s.advance("=")
			self.Second = s.expression(0)
			if id := s.tok.node.ID; id == "to" || id == "downto" {
				self.Direction = id
				s.advance("")
			}
			self.Third = s.expression(0)
			if s.tok.node.ID == "by" {
				s.advance("by")
				self.Increment = s.expression(0)
			}
			s.eos()

			self.Body = s.block()
			self.ID = "for"
			self.Type = ast.ForStatement

		case "in":
			s.reverse()
			self.First = s.expression(0)
			s.eos()

			self.Body = s.block()
			self.ID = "for_in"
			self.Type = ast.ForInStatement

		default:
			fail(s.tok.node, "Unexpected token.  Expected 'in' or '='.")
		}

	default:
		fail(s.tok.node, "Unexpected token. Expected '(' or a variable name.")
	}

	return s.closeBlock(self)
}

func switchStatement(s *session, self *ast.Node) *ast.Node {
	self.Discriminant = s.expression(0)
	s.eos()

	for {
		c := s.tok.node
		switch c.ID {
		case "case":
			s.advance("case")
			for {
				c.Tests = append(c.Tests, s.expression(0))
				if s.tok.node.ID != "," {
					break
				}
				s.advance(",")
			}
		case "default":
			s.advance("default")
		default:
			self.Type = ast.SwitchStatement
			return s.closeBlock(self)
		}
		s.eos()

		c.Consequent = s.block()
		c.Arity = "binary"
		c.Type = ast.SwitchCase
		end := s.tok.node
		s.advance("end")
		span(c, c, end)
		self.Cases = append(self.Cases, c)

		s.eos()
	}
}

func gotoStatement(s *session, self *ast.Node) *ast.Node {
	target := s.tok.node
	if target.Arity != "name" {
		fail(target, "Expected label")
	}
	target.Scope = s.scope
	self.Argument = target
	self.Arity = "unary"
	self.Type = ast.GotoStatement
	span(self, self, target)
	s.advance("")
	s.eos()
	return self
}
