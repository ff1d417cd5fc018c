package walker

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/dhamidi/bannockburn/ast"
)

type Phase int

const (
	// Enter fires once per node, before any of its children.
	Enter Phase = iota
	// Before fires ahead of the children on one edge.
	Before
	// After fires once the children on one edge have been walked.
	After
)

var phaseNames = map[Phase]string{
	Enter:  "",
	Before: "before",
	After:  "after",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// Wildcard matches any node type.
const Wildcard = "*"

// Event identifies the moment a handler runs. Field is set for Before and
// After events only.
type Event struct {
	Phase Phase
	Type  string
	Field string
}

func (e Event) String() string {
	s := e.Type
	if e.Field != "" {
		s += "." + e.Field
	}
	if e.Phase != Enter {
		s = e.Phase.String() + ":" + s
	}
	return s
}

var specPattern = regexp.MustCompile(`^(?:(before|after):)?(\w+|\*)(?:\.(\w+))?$`)

// ParseEvents turns a textual spec into the events it stands for:
//
//	"IfStatement"              entering an IfStatement
//	"*"                        any event without a handler of its own
//	"before:IfStatement.test"  ahead of the test edge
//	"after:IfStatement.test"   after the test edge
//	"IfStatement.test"         both of the above
func ParseEvents(spec string) ([]Event, error) {
	m := specPattern.FindStringSubmatch(spec)
	if m == nil {
		return nil, fmt.Errorf("invalid event spec %q", spec)
	}
	when, typ, field := m[1], m[2], m[3]

	if when != "" && field == "" {
		return nil, fmt.Errorf("event spec %q: before/after must name a child edge", spec)
	}
	if typ != Wildcard {
		t, ok := ast.ParseNodeType(typ)
		if !ok {
			return nil, fmt.Errorf("event spec %q: unknown node type %s", spec, typ)
		}
		if field != "" && !slices.Contains(ast.Edges(t), field) {
			return nil, fmt.Errorf("event spec %q: %s has no child edge %s", spec, typ, field)
		}
	}

	switch {
	case field == "":
		return []Event{{Phase: Enter, Type: typ}}, nil
	case when == "before":
		return []Event{{Phase: Before, Type: typ, Field: field}}, nil
	case when == "after":
		return []Event{{Phase: After, Type: typ, Field: field}}, nil
	}
	return []Event{
		{Phase: Before, Type: typ, Field: field},
		{Phase: After, Type: typ, Field: field},
	}, nil
}
