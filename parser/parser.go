package parser

import (
	"errors"
	"strings"
	"sync"

	"github.com/dhamidi/bannockburn/ast"
	"github.com/dhamidi/bannockburn/lexer"
	"github.com/dhamidi/bannockburn/preprocessor"
)

type Parser struct {
	options          Options
	features         *Features
	preprocessorOpts []preprocessor.Option
	pre              *preprocessor.Preprocessor

	symbols      symbolTable
	builtinTypes map[string]bool
	reserved     map[string]bool

	mu   sync.Mutex
	last artifacts
}

// artifacts are the intermediate results of the most recent Parse.
type artifacts struct {
	source     string
	tokens     []lexer.Token
	whitespace []lexer.Whitespace
}

func New(opts ...Option) *Parser {
	p := &Parser{
		features: DefaultFeatures(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.features = p.features.withTypes(p.options.AdditionalTypes)
	p.builtinTypes = make(map[string]bool, len(p.features.BuiltinTypes))
	for _, t := range p.features.BuiltinTypes {
		p.builtinTypes[t] = true
	}
	p.reserved = make(map[string]bool, len(p.features.ReservedWords))
	for _, r := range p.features.ReservedWords {
		p.reserved[strings.ToLower(r)] = true
	}
	p.pre = preprocessor.New(p.preprocessorOpts...)
	p.symbols = p.buildSymbols()
	return p
}

func (p *Parser) Options() Options {
	return p.options
}

func (p *Parser) isBuiltinType(name string) bool {
	return p.builtinTypes[strings.ToLower(name)]
}

func (p *Parser) isReserved(name string) bool {
	return p.reserved[strings.ToLower(name)]
}

// Parse returns the statements of src, or nil for a script without
// statements. The error is a *SyntaxError or a *preprocessor.Error; a
// recursive macro unwraps to a *preprocessor.CycleError.
func (p *Parser) Parse(src string) ([]*ast.Node, error) {
	l := lexer.New(src)
	var tokens []lexer.Token
	for tok := l.Next(); tok.Kind != lexer.EOF; tok = l.Next() {
		tokens = append(tokens, tok)
	}

	tokens, err := p.pre.Run(tokens)
	if err != nil {
		p.remember(artifacts{source: src, whitespace: l.Whitespace()})
		return nil, err
	}
	tokens = addTerminator(tokens)
	p.remember(artifacts{source: src, tokens: tokens, whitespace: l.Whitespace()})

	return newSession(p, tokens).run()
}

// ParseTokens parses an already lexed and preprocessed token stream.
func (p *Parser) ParseTokens(tokens []lexer.Token) ([]*ast.Node, error) {
	return newSession(p, addTerminator(tokens)).run()
}

func (p *Parser) remember(a artifacts) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = a
}

// Tokens returns the preprocessed tokens of the most recent Parse.
func (p *Parser) Tokens() []lexer.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.tokens
}

// Source returns the input of the most recent Parse.
func (p *Parser) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.source
}

// Whitespace returns the whitespace records of the most recent Parse.
func (p *Parser) Whitespace() []lexer.Whitespace {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.whitespace
}

// addTerminator appends an empty terminator when the stream does not end
// with one, so the last statement is always closed.
func addTerminator(tokens []lexer.Token) []lexer.Token {
	if len(tokens) == 0 {
		return tokens
	}
	last := tokens[len(tokens)-1]
	if last.Kind == lexer.Newline {
		return tokens
	}
	at := lexer.Position{Line: last.Loc.End.Line, Col: last.Loc.End.Col + 1}
	end := last.Range[1] + 1
	out := make([]lexer.Token, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, lexer.Token{
		Kind:  lexer.Newline,
		Range: lexer.Range{end, end},
		Loc:   lexer.Location{Start: at, End: at},
	})
}

// AsSyntaxError unwraps err to a *SyntaxError.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	ok := errors.As(err, &se)
	return se, ok
}
