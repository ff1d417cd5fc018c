package preprocessor

import (
	"fmt"
	"strings"
)

// CycleError reports a macro whose expansion reaches itself.
type CycleError struct {
	Name string
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("macro %s expands to itself: %s", e.Name, strings.Join(e.Path, " -> "))
}

// Macros maps names to replacement bodies. Items of any type can be used
// as names and body elements; the key function decides which items refer
// to the same macro.
type Macros[T any] struct {
	defs    map[string][]T
	key     func(T) string
	canEval func(T) bool
}

type MacrosOption[T any] func(*Macros[T])

// WithCanEval restricts expansion to items for which fn returns true.
// Other items are copied through unchanged.
func WithCanEval[T any](fn func(T) bool) MacrosOption[T] {
	return func(m *Macros[T]) {
		m.canEval = fn
	}
}

func NewMacros[T any](key func(T) string, opts ...MacrosOption[T]) *Macros[T] {
	m := &Macros[T]{
		defs: make(map[string][]T),
		key:  key,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewStringMacros returns a table of plain string macros with
// case-insensitive names.
func NewStringMacros(opts ...MacrosOption[string]) *Macros[string] {
	return NewMacros(strings.ToLower, opts...)
}

func (m *Macros[T]) Define(name T, body []T) *Macros[T] {
	m.defs[m.key(name)] = append([]T(nil), body...)
	return m
}

func (m *Macros[T]) Undef(name T) *Macros[T] {
	delete(m.defs, m.key(name))
	return m
}

func (m *Macros[T]) IsDefined(name T) bool {
	_, ok := m.defs[m.key(name)]
	return ok
}

// Len returns the number of defined macros.
func (m *Macros[T]) Len() int {
	return len(m.defs)
}

// Clone returns an independent copy of the table.
func (m *Macros[T]) Clone() *Macros[T] {
	c := &Macros[T]{
		defs:    make(map[string][]T, len(m.defs)),
		key:     m.key,
		canEval: m.canEval,
	}
	for k, body := range m.defs {
		c.defs[k] = body
	}
	return c
}

// Evaluate fully expands name. An undefined name evaluates to itself.
func (m *Macros[T]) Evaluate(name T) ([]T, error) {
	return m.expand(name, nil, nil)
}

func (m *Macros[T]) expand(item T, active []string, out []T) ([]T, error) {
	k := m.key(item)
	body, ok := m.defs[k]
	if !ok {
		return append(out, item), nil
	}
	for _, a := range active {
		if a == k {
			path := append(append([]string(nil), active...), k)
			return nil, &CycleError{Name: k, Path: path}
		}
	}
	active = append(active, k)

	var err error
	for _, child := range body {
		if m.canEval != nil && !m.canEval(child) {
			out = append(out, child)
			continue
		}
		if out, err = m.expand(child, active, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
