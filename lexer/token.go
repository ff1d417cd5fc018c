package lexer

import "fmt"

// Position is a point in the source. Lines are 1-based, columns are
// 0-based byte offsets within the line.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Location spans from the first to the last character of a token or node.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Range holds the byte offsets of the first and the last character.
type Range [2]int

type Kind int

const (
	EOF Kind = iota
	Name
	Number
	String
	ObjRef
	Operator
	Newline
)

var kindNames = map[Kind]string{
	EOF:      "(end)",
	Name:     "name",
	Number:   "number",
	String:   "string",
	ObjRef:   "objref",
	Operator: "operator",
	Newline:  "(nl)",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is produced once by the lexer and never mutated afterwards.
// Newline tokens terminate statements; their value is "\n", ";" or
// empty for terminators synthesized by the lexer or the parser.
type Token struct {
	Kind  Kind     `json:"type"`
	Value string   `json:"value"`
	Range Range    `json:"range"`
	Loc   Location `json:"loc"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Loc.Start, t.Kind, t.Value)
}

// Whitespace records spacing, comments and line continuations that the
// lexer skipped. The parser never sees them.
type Whitespace struct {
	Value string `json:"value"`
	Range Range  `json:"range"`
}

var operators = []string{
	"...", "$$",
	"==", "!=", "<>", "<=", ">=", "<<", ">>",
	"&&", "||", "^^",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
}
