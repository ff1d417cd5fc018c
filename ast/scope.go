package ast

import "strings"

// Scope holds the names declared in one lexical block. Names are stored
// lower-cased; lookups are case-insensitive.
type Scope struct {
	Declarations map[string]*Node
	Labels       map[string]*Node
	Parent       *Scope
	// Pseudo marks the implicit function wrapping statements that come
	// before the first function of a script.
	Pseudo bool
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		Declarations: make(map[string]*Node),
		Labels:       make(map[string]*Node),
		Parent:       parent,
	}
}

// Lookup finds the nearest declaration of name, walking outward.
func (s *Scope) Lookup(name string) *Node {
	key := strings.ToLower(name)
	for sc := s; sc != nil; sc = sc.Parent {
		if n, ok := sc.Declarations[key]; ok {
			return n
		}
	}
	return nil
}

// LabelScope returns the function scope that owns labels used in s. It
// is the ancestor directly below the root.
func (s *Scope) LabelScope() *Scope {
	for e := s; e.Parent != nil; e = e.Parent {
		if e.Parent.Parent == nil {
			return e
		}
	}
	return s
}

func (s *Scope) FindLabel(name string) *Node {
	return s.LabelScope().Labels[strings.ToLower(name)]
}

// Depth is the number of ancestors of s.
func (s *Scope) Depth() int {
	d := 0
	for e := s.Parent; e != nil; e = e.Parent {
		d++
	}
	return d
}
