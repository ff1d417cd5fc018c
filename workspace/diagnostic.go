package workspace

import (
	"errors"
	"fmt"

	"github.com/dhamidi/bannockburn/lexer"
	"github.com/dhamidi/bannockburn/parser"
	"github.com/dhamidi/bannockburn/preprocessor"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// Diagnostic is a problem found in a document. Loc covers the offending
// token; its end is inclusive.
type Diagnostic struct {
	Loc      lexer.Location
	Severity Severity
	Source   string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s: %s", d.Loc.Start.Line, d.Severity, d.Message)
}

// Diagnose converts a parse failure into diagnostics. Errors without a
// position are reported on the first line.
func Diagnose(err error) []Diagnostic {
	if err == nil {
		return nil
	}

	var serr *parser.SyntaxError
	var perr *preprocessor.Error
	switch {
	case errors.As(err, &serr) && serr.Token != nil:
		return []Diagnostic{{
			Loc:      serr.Token.Loc,
			Severity: SeverityError,
			Source:   "parser",
			Message:  serr.Message,
		}}
	case errors.As(err, &perr):
		return []Diagnostic{{
			Loc:      perr.Token.Loc,
			Severity: SeverityError,
			Source:   "preprocessor",
			Message:  perr.Message,
		}}
	}

	first := lexer.Position{Line: 1}
	return []Diagnostic{{
		Loc:      lexer.Location{Start: first, End: first},
		Severity: SeverityError,
		Message:  err.Error(),
	}}
}
