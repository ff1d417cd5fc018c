package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/bannockburn/ast"
	"github.com/dhamidi/bannockburn/lexer"
)

const (
	idNewline = "(nl)"
	idEnd     = "(end)"
	idName    = "(name)"
	idLiteral = "(literal)"
)

// token is the current token: the node built for it and the symbol that
// decides how it parses.
type token struct {
	node *ast.Node
	sym  *symbol
}

// session is the state of one Parse call.
type session struct {
	p      *Parser
	tokens []lexer.Token
	pos    int
	tok    token
	scope  *ast.Scope
}

func newSession(p *Parser, tokens []lexer.Token) *session {
	return &session{p: p, tokens: tokens}
}

func (s *session) run() (stmts []*ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			stmts, err = nil, se
		}
	}()

	s.pushScope()
	s.advance("")
	s.skipNewlines()

	if len(s.tokens) > 0 && s.tok.node.Arity != "function" {
		s.pushScope()
		s.scope.Pseudo = true
	}

	stmts = s.statements()
	s.advance(idEnd)
	s.popScope()
	return stmts, nil
}

func (s *session) pushScope() *ast.Scope {
	s.scope = ast.NewScope(s.scope)
	return s.scope
}

func (s *session) popScope() {
	s.scope = s.scope.Parent
}

// find resolves a lower-cased name to a declaration or a symbol.
func (s *session) find(name string) (*ast.Node, *symbol) {
	if decl := s.scope.Lookup(name); decl != nil {
		return decl, nil
	}
	if sym, ok := s.p.symbols[name]; ok {
		return nil, sym
	}
	return nil, s.p.symbols[idName]
}

// define binds n in scope.
func (s *session) define(scope *ast.Scope, n *ast.Node) *ast.Node {
	key := strings.ToLower(n.Value)
	if s.p.isReserved(key) {
		fail(n, n.Value+" not expected here.")
	}
	if _, ok := scope.Declarations[key]; ok {
		fail(n, n.Value+" has already been defined in this scope.")
	}
	scope.Declarations[key] = n
	n.Scope = s.scope
	return n
}

// label binds n in the label scope of the current function.
func (s *session) label(n *ast.Node) *ast.Node {
	ls := s.scope.LabelScope()
	key := strings.ToLower(n.Value)
	if s.p.isReserved(key) {
		fail(n, n.Value+" not expected here.")
	}
	if _, ok := ls.Labels[key]; ok {
		fail(n, fmt.Sprintf("The label '%s' has already been assigned to another statement in this function.", n.Value))
	}
	ls.Labels[key] = n
	n.Scope = s.scope
	return n
}

// advance checks that the current token has the given id, if any, and
// moves to the next token. Names are classified against the scope chain
// here: declared names, builtin types and keywords each get their own
// symbol.
func (s *session) advance(id string) *ast.Node {
	if id != "" && s.tok.node.ID != id {
		fail(s.tok.node, fmt.Sprintf("Expected '%s'.", id))
	}

	if s.pos >= len(s.tokens) {
		// one past the end, so reverse lands on the last token
		s.pos = len(s.tokens) + 1
		n := &ast.Node{ID: idEnd, Arity: idEnd, Value: idEnd}
		if len(s.tokens) > 0 {
			last := s.tokens[len(s.tokens)-1]
			n.Range = last.Range
			n.Loc = last.Loc
		}
		s.tok = token{node: n, sym: s.p.symbols[idEnd]}
		return n
	}

	t := s.tokens[s.pos]
	s.pos++

	n := &ast.Node{Value: t.Value, Range: t.Range, Loc: t.Loc}
	kind := t.Kind
	key := strings.ToLower(t.Value)
	arity := kind.String()

	if kind == lexer.Name {
		if alt, ok := s.p.features.OpAlternates[key]; ok {
			key = alt
			kind = lexer.Operator
			arity = "operator"
		}
	}

	var sym *symbol
	switch kind {
	case lexer.Name:
		decl, found := s.find(key)
		switch {
		case decl != nil:
			sym = s.p.symbols[idName]
			n.Declared = true
		case s.p.isBuiltinType(key) || found.id == idName:
			sym = found
		default:
			sym = found
			arity = found.id
		}
		if arity == "name" {
			n.Type = ast.Identifier
		}
	case lexer.Operator:
		sym = s.p.symbols[key]
		if sym == nil {
			fail(n, "Unknown operator.")
		}
	case lexer.String, lexer.Number:
		sym = s.p.symbols[idLiteral]
		arity = "literal"
		n.Type = ast.Literal
	case lexer.ObjRef:
		sym = s.p.symbols[idLiteral]
		arity = "literal"
		n.Type = ast.ObjRefLiteral
	case lexer.Newline:
		sym = s.p.symbols[idNewline]
	default:
		fail(n, "Unexpected token.")
	}

	n.ID = sym.id
	n.Arity = arity
	s.tok = token{node: n, sym: sym}
	return n
}

// reverse steps back one token and classifies it again.
func (s *session) reverse() {
	s.pos -= 2
	s.advance("")
}

func (s *session) skipNewlines() {
	for s.tok.node.Arity == idNewline {
		s.advance(idNewline)
	}
}

// eos consumes the terminator of a statement and any blank lines after
// it.
func (s *session) eos() {
	s.advance(idNewline)
	s.skipNewlines()
}

func (s *session) expression(rbp int) *ast.Node {
	t := s.tok
	if t.sym.std != nil && t.sym.reservedWord {
		fail(t.node, t.node.Value+" not expected here.")
	}
	s.advance("")
	left := s.nud(t)
	for rbp < s.tok.sym.lbp {
		t = s.tok
		s.advance("")
		left = s.led(t, left)
	}
	return left
}

func (s *session) nud(t token) *ast.Node {
	if t.sym.nud != nil {
		return t.sym.nud(s, t.node)
	}
	if t.node.Arity == "name" || t.node.ID == "until" {
		t.node.Type = ast.Identifier
		return t.node
	}
	fail(t.node, "Error parsing this statement.")
	return nil
}

func (s *session) led(t token, left *ast.Node) *ast.Node {
	if t.sym.led != nil {
		return t.sym.led(s, t.node, left)
	}
	fail(t.node, "Missing operator.")
	return nil
}

// span sets the range and location of n to run from start to end.
func span(n, start, end *ast.Node) *ast.Node {
	n.Range = lexer.Range{start.Range[0], end.Range[1]}
	n.Loc = lexer.Location{Start: start.Loc.Start, End: end.Loc.End}
	return n
}
