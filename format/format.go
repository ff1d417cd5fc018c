// Package format renders lexer and parser output for people and tools.
package format

import (
	"github.com/dhamidi/bannockburn/ast"
	"github.com/dhamidi/bannockburn/lexer"
)

type Encoder[T any] interface {
	Encode(v T) error
	MarshalText(v T) ([]byte, error)
}

// Lexed is the complete output of the lexer for one source.
type Lexed struct {
	Tokens     []lexer.Token      `json:"tokens"`
	Whitespace []lexer.Whitespace `json:"whitespace,omitempty"`
}

// Lex tokenizes src. Whitespace records are kept only when withWhitespace
// is set.
func Lex(src string, withWhitespace bool) Lexed {
	tokens, ws := lexer.Tokenize(src)
	out := Lexed{Tokens: tokens}
	if withWhitespace {
		out.Whitespace = ws
	}
	return out
}

var (
	_ Encoder[[]*ast.Node] = (*ASTJSONEncoder)(nil)
	_ Encoder[Lexed]       = (*TokenJSONEncoder)(nil)
	_ Encoder[Lexed]       = (*TokenLineEncoder)(nil)
)
