// Package walker traverses syntax trees and dispatches events to
// registered handlers.
//
// Traversal is depth-first. For each node the walker fires the node's
// type event, then for every non-empty child edge fires a before event,
// walks the children and fires an after event. A handler that returns
// false stops the walk below that point: returning false from a type
// event skips all children of the node, and returning false from a before
// event skips that edge and its after event.
package walker

import (
	"github.com/dhamidi/bannockburn/ast"
)

// Handler is called for an event. Returning false prunes the walk.
type Handler func(v *Visit) bool

// Visit describes the event being handled.
type Visit struct {
	Event Event
	Node  *ast.Node
	// Edges lists the child edges of Node on an Enter event.
	Edges []string
	// Children holds the nodes on the edge of a Before or After event.
	Children []*ast.Node
	Walker   *Walker
}

// PathElem is one step from the root to the node being visited.
type PathElem struct {
	Node *ast.Node
	Edge string
}

// Binding pairs an event spec with its handler.
type Binding struct {
	Spec    string
	Handler Handler
}

type Walker struct {
	handlers map[Event][]Handler
	path     []PathElem
}

func New(bindings ...Binding) (*Walker, error) {
	w := &Walker{handlers: make(map[Event][]Handler)}
	if err := w.Bind(bindings...); err != nil {
		return nil, err
	}
	return w, nil
}

// On registers h for the events named by spec. See ParseEvents for the
// spec syntax.
func (w *Walker) On(spec string, h Handler) error {
	events, err := ParseEvents(spec)
	if err != nil {
		return err
	}
	for _, e := range events {
		w.OnEvent(e, h)
	}
	return nil
}

// OnAll registers h for every spec.
func (w *Walker) OnAll(specs []string, h Handler) error {
	for _, spec := range specs {
		if err := w.On(spec, h); err != nil {
			return err
		}
	}
	return nil
}

// OnMap registers each handler under its spec.
func (w *Walker) OnMap(m map[string]Handler) error {
	for spec, h := range m {
		if err := w.On(spec, h); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) Bind(bindings ...Binding) error {
	for _, b := range bindings {
		if err := w.On(b.Spec, b.Handler); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) OnEvent(e Event, h Handler) *Walker {
	w.handlers[e] = append(w.handlers[e], h)
	return w
}

// Start walks the given root nodes.
func (w *Walker) Start(nodes ...*ast.Node) {
	w.path = w.path[:0]
	w.walk(nodes)
}

// Path returns the chain of nodes and edges leading to the current node.
// The slice is only valid during the handler call.
func (w *Walker) Path() []PathElem {
	return w.path
}

// Parent returns the node owning the edge being walked, or nil at the
// top level.
func (w *Walker) Parent() *ast.Node {
	if len(w.path) == 0 {
		return nil
	}
	return w.path[len(w.path)-1].Node
}

func (w *Walker) walk(nodes []*ast.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		typ := n.Type.String()
		edges := ast.Edges(n.Type)

		if !w.fire(Event{Phase: Enter, Type: typ}, &Visit{Node: n, Edges: edges}) {
			continue
		}

		for _, name := range edges {
			children := n.Edge(name)
			if children == nil {
				continue
			}
			v := &Visit{Node: n, Children: children}
			if !w.fire(Event{Phase: Before, Type: typ, Field: name}, v) {
				continue
			}
			w.path = append(w.path, PathElem{Node: n, Edge: name})
			w.walk(children)
			w.path = w.path[:len(w.path)-1]
			w.fire(Event{Phase: After, Type: typ, Field: name}, v)
		}
	}
}

// fire runs the handlers for e. When e has none, handlers registered for
// the same edge of any type run instead, and failing those the catch-all
// "*" handlers. It reports whether every handler returned true.
func (w *Walker) fire(e Event, v *Visit) bool {
	handlers := w.handlers[e]
	if len(handlers) == 0 && e.Phase != Enter {
		handlers = w.handlers[Event{Phase: e.Phase, Type: Wildcard, Field: e.Field}]
	}
	if len(handlers) == 0 {
		handlers = w.handlers[Event{Phase: Enter, Type: Wildcard}]
	}

	v.Event = e
	v.Walker = w
	for _, h := range handlers {
		if !h(v) {
			return false
		}
	}
	return true
}

// StartPos returns the offset where n begins.
func StartPos(n *ast.Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	return n.Range[0], true
}

// EndPos returns the offset of the last character of n.
func EndPos(n *ast.Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	return n.Range[1], true
}

func StartLine(n *ast.Node) (int, bool) {
	if n == nil || n.Loc.Start.Line == 0 {
		return 0, false
	}
	return n.Loc.Start.Line, true
}

func EndLine(n *ast.Node) (int, bool) {
	if n == nil || n.Loc.End.Line == 0 {
		return 0, false
	}
	return n.Loc.End.Line, true
}
