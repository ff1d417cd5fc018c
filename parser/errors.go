package parser

import (
	"fmt"

	"github.com/dhamidi/bannockburn/ast"
)

// SyntaxError is a grammar or declaration error. Parsing stops at the
// first one.
type SyntaxError struct {
	Token       *ast.Node
	Description string
	Line        int
	Message     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Error at %s on line %d: %s", e.Description, e.Line, e.Message)
}

func newSyntaxError(n *ast.Node, message string) *SyntaxError {
	desc := "'" + n.Value + "'"
	if n.ID == "(end)" {
		desc = "end of input"
	}
	return &SyntaxError{
		Token:       n,
		Description: desc,
		Line:        n.Loc.Start.Line,
		Message:     message,
	}
}

// fail aborts the current parse. Parse recovers the panic and returns
// the error.
func fail(n *ast.Node, message string) {
	panic(newSyntaxError(n, message))
}
