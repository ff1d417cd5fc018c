// Package preprocessor applies conditional compilation and macro
// substitution to a token stream.
//
// Directives occupy a whole line that starts with '#':
//
//	#define NAME body...
//	#undef NAME
//	#ifdef NAME / #ifndef NAME
//	#else
//	#endif
//
// Directive names are case-insensitive, as are macro names.
package preprocessor

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dhamidi/bannockburn/lexer"
)

// Error is a malformed or misplaced directive, or a macro that could not
// be expanded. Err holds the cause of an expansion failure.
type Error struct {
	Token   lexer.Token
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Token.Loc.Start.Line, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func tokenKey(tok lexer.Token) string {
	return strings.ToLower(tok.Value)
}

func isName(tok lexer.Token) bool {
	return tok.Kind == lexer.Name
}

// NewTokenMacros returns a macro table keyed by the lower-cased value of
// name tokens. Only name tokens in a body are expanded further.
func NewTokenMacros() *Macros[lexer.Token] {
	return NewMacros(tokenKey, WithCanEval(isName))
}

type Preprocessor struct {
	predefined *Macros[lexer.Token]
}

type Option func(*Preprocessor)

// WithDefines predefines macros from name → body source text. Names
// are applied in sorted order.
func WithDefines(defines map[string]string) Option {
	return func(p *Preprocessor) {
		for _, name := range slices.Sorted(maps.Keys(defines)) {
			p.DefineText(name, defines[name])
		}
	}
}

func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{predefined: NewTokenMacros()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Define predefines a macro for every subsequent Run.
func (p *Preprocessor) Define(name string, body []lexer.Token) *Preprocessor {
	p.predefined.Define(lexer.Token{Kind: lexer.Name, Value: name}, body)
	return p
}

// DefineText predefines a macro whose body is lexed from text. Line
// breaks in the body are dropped.
func (p *Preprocessor) DefineText(name, text string) *Preprocessor {
	tokens, _ := lexer.Tokenize(text)
	var body []lexer.Token
	for _, tok := range tokens {
		if tok.Kind != lexer.Newline {
			body = append(body, tok)
		}
	}
	return p.Define(name, body)
}

func (p *Preprocessor) IsDefined(name string) bool {
	return p.predefined.IsDefined(lexer.Token{Kind: lexer.Name, Value: name})
}

// Run preprocesses tokens with no predefined macros.
func Run(tokens []lexer.Token) ([]lexer.Token, error) {
	return New().Run(tokens)
}

// Run returns a new token slice with directive lines removed, excluded
// regions dropped and macros expanded. Definitions made by the input do
// not outlive the call.
func (p *Preprocessor) Run(tokens []lexer.Token) ([]lexer.Token, error) {
	st := &state{macros: p.predefined.Clone()}
	out := make([]lexer.Token, 0, len(tokens))
	lineStart := true

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if lineStart && tok.Kind == lexer.Operator && tok.Value == "#" {
			end := i + 1
			for end < len(tokens) && !isLineBreak(tokens[end]) {
				end++
			}
			if err := st.directive(tok, tokens[i+1:end]); err != nil {
				return nil, err
			}
			i = end + 1
			continue
		}
		lineStart = isLineBreak(tok)
		i++

		if !st.active() {
			continue
		}
		if tok.Kind != lexer.Name || !st.macros.IsDefined(tok) {
			out = append(out, tok)
			continue
		}
		expanded, err := st.macros.Evaluate(tok)
		if err != nil {
			return nil, &Error{Token: tok, Message: fmt.Sprintf("expanding %s: %v", tok.Value, err), Err: err}
		}
		for _, e := range expanded {
			e.Range = tok.Range
			e.Loc = tok.Loc
			out = append(out, e)
		}
	}

	if st.top != nil {
		return nil, &Error{Token: st.top.token, Message: "Missing #endif."}
	}
	return out, nil
}

// isLineBreak reports whether tok ends a physical line. A ';' ends a
// statement but not the directive line.
func isLineBreak(tok lexer.Token) bool {
	return tok.Kind == lexer.Newline && tok.Value != ";"
}

type frame struct {
	token        lexer.Token
	taking       bool
	matched      bool
	parentActive bool
	parent       *frame
}

type state struct {
	macros *Macros[lexer.Token]
	top    *frame
}

func (s *state) active() bool {
	return s.top == nil || s.top.taking
}

func (s *state) directive(hash lexer.Token, line []lexer.Token) error {
	active := s.active()
	if len(line) == 0 || line[0].Kind != lexer.Name {
		if !active {
			return nil
		}
		return &Error{Token: hash, Message: "Expected a directive name."}
	}

	directive := line[0]
	switch strings.ToLower(directive.Value) {
	case "ifdef", "ifndef":
		cond := false
		if len(line) > 1 && line[1].Kind == lexer.Name {
			cond = s.macros.IsDefined(line[1])
		} else if active {
			return &Error{Token: directive, Message: "Expected a macro name."}
		}
		if strings.EqualFold(directive.Value, "ifndef") {
			cond = !cond
		}
		s.top = &frame{
			token:        directive,
			taking:       active && cond,
			matched:      cond,
			parentActive: active,
			parent:       s.top,
		}

	case "else":
		if s.top == nil {
			return &Error{Token: directive, Message: "#else without #ifdef."}
		}
		s.top.taking = !s.top.matched && s.top.parentActive
		s.top.matched = true

	case "endif":
		if s.top == nil {
			return &Error{Token: directive, Message: "#endif without #ifdef."}
		}
		s.top = s.top.parent

	case "define", "undef":
		if !active {
			return nil
		}
		if len(line) < 2 || line[1].Kind != lexer.Name {
			return &Error{Token: directive, Message: "Expected a macro name."}
		}
		if strings.EqualFold(directive.Value, "undef") {
			s.macros.Undef(line[1])
		} else {
			s.macros.Define(line[1], line[2:])
		}

	default:
		if active {
			return &Error{Token: directive, Message: fmt.Sprintf("Unknown directive '%s'.", directive.Value)}
		}
	}
	return nil
}

// IsCycle reports whether err was caused by a recursive macro.
func IsCycle(err error) bool {
	var cycle *CycleError
	return errors.As(err, &cycle)
}
