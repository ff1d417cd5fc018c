package workspace

import (
	"fmt"

	"github.com/dhamidi/bannockburn/ast"
	"github.com/dhamidi/bannockburn/lexer"
	"github.com/dhamidi/bannockburn/walker"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota + 1
	SymbolParameter
	SymbolVariable
	SymbolLabel
)

var symbolKindNames = map[SymbolKind]string{
	SymbolFunction:  "function",
	SymbolParameter: "parameter",
	SymbolVariable:  "variable",
	SymbolLabel:     "label",
}

func (k SymbolKind) String() string {
	return symbolKindNames[k]
}

// Symbol is an entry of a document outline. Loc spans the whole
// declaration, NameLoc only its name.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Detail   string
	Loc      lexer.Location
	NameLoc  lexer.Location
	Children []*Symbol
}

// Outline collects the functions of a script with their parameters,
// variables and labels. Declarations made before the first function are
// returned at the top level.
func Outline(nodes []*ast.Node) []*Symbol {
	o := &outliner{functions: map[*ast.Node]*Symbol{}}
	w, err := walker.New()
	if err == nil {
		err = w.OnMap(o.handlers())
	}
	if err != nil {
		panic(fmt.Sprintf("outline: %v", err))
	}
	w.Start(nodes...)
	return o.top
}

type outliner struct {
	top       []*Symbol
	functions map[*ast.Node]*Symbol
}

// add places s under the closest enclosing function.
func (o *outliner) add(w *walker.Walker, s *Symbol) {
	path := w.Path()
	for i := len(path) - 1; i >= 0; i-- {
		if fn, ok := o.functions[path[i].Node]; ok {
			fn.Children = append(fn.Children, s)
			return
		}
	}
	o.top = append(o.top, s)
}

func (o *outliner) handlers() map[string]walker.Handler {
	return map[string]walker.Handler{
		"FunctionDeclaration": func(v *walker.Visit) bool {
			n := v.Node
			s := &Symbol{
				Name:    n.Name,
				Kind:    SymbolFunction,
				Detail:  n.ReturnType,
				Loc:     n.Loc,
				NameLoc: nameLoc(n),
			}
			o.functions[n] = s
			o.top = append(o.top, s)
			return true
		},
		"Parameter": func(v *walker.Visit) bool {
			n := v.Node
			name := "..."
			if n.Ident != nil {
				name = n.Ident.Value
			}
			o.add(v.Walker, &Symbol{
				Name:    name,
				Kind:    SymbolParameter,
				Detail:  typeName(n.DataType),
				Loc:     n.Loc,
				NameLoc: nameLoc(n),
			})
			return false
		},
		"VariableDeclarator": func(v *walker.Visit) bool {
			n := v.Node
			o.add(v.Walker, &Symbol{
				Name:    n.Ident.Value,
				Kind:    SymbolVariable,
				Detail:  typeName(n.DataType),
				Loc:     n.Loc,
				NameLoc: nameLoc(n),
			})
			return false
		},
		"LabelStatement": func(v *walker.Visit) bool {
			o.add(v.Walker, &Symbol{
				Name:    v.Node.Value,
				Kind:    SymbolLabel,
				Loc:     v.Node.Loc,
				NameLoc: v.Node.Loc,
			})
			return true
		},
	}
}

func nameLoc(n *ast.Node) lexer.Location {
	if n.Ident != nil {
		return n.Ident.Loc
	}
	return n.Loc
}

func typeName(n *ast.Node) string {
	if n == nil {
		return ""
	}
	return n.Value
}
