package ast

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNodeTypeNames(t *testing.T) {
	for typ, name := range nodeTypeNames {
		got, ok := ParseNodeType(name)
		if !ok || got != typ {
			t.Errorf("ParseNodeType(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseNodeType("Nope"); ok {
		t.Error("ParseNodeType accepted an unknown name")
	}
}

func TestEdge(t *testing.T) {
	one := &Node{Type: Literal, Value: "1"}
	two := &Node{Type: Literal, Value: "2"}

	tests := []struct {
		name string
		node *Node
		edge string
		want []*Node
	}{
		{"single", &Node{Type: ReturnStatement, Argument: one}, "argument", []*Node{one}},
		{"missing single", &Node{Type: ReturnStatement}, "argument", nil},
		{"empty list", &Node{Type: FunctionDeclaration, Body: []*Node{}}, "body", nil},
		{"list", &Node{Type: ListExpression, Elements: []*Node{one, two}}, "elements", []*Node{one, two}},
		{"case tests", &Node{Type: SwitchCase, Tests: []*Node{one, two}}, "test", []*Node{one, two}},
		{"default case", &Node{Type: SwitchCase, Test: one}, "test", nil},
		{"if test", &Node{Type: IfStatement, Test: one}, "test", []*Node{one}},
		{"unknown edge", &Node{Type: ReturnStatement, Argument: one}, "nope", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.node.Edge(tt.edge)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Edge(%q) = %v, want %v", tt.edge, got, tt.want)
			}
		})
	}
}

func TestEveryEdgeIsAddressable(t *testing.T) {
	n := &Node{}
	for typ, names := range edges {
		for _, name := range names {
			n.Type = typ
			// An empty node must answer nil rather than panic for every
			// declared edge.
			if got := n.Edge(name); got != nil {
				t.Errorf("%s.%s on empty node = %v", typ, name, got)
			}
		}
	}
}

func TestInspect(t *testing.T) {
	x := &Node{Type: Identifier, Value: "x"}
	y := &Node{Type: Identifier, Value: "y"}
	sum := &Node{Type: BinaryExpression, Left: x, Right: y}
	stmt := &Node{Type: ExpressionStatement, Expression: sum}

	var seen []string
	Inspect([]*Node{stmt}, func(n *Node) bool {
		seen = append(seen, n.String())
		return n.Type != BinaryExpression || n.Operator != "skip"
	})
	want := []string{"ExpressionStatement", "BinaryExpression", "x", "y"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("Inspect visited %v, want %v", seen, want)
	}

	seen = nil
	sum.Operator = "skip"
	Inspect([]*Node{stmt}, func(n *Node) bool {
		seen = append(seen, n.String())
		return n.Operator != "skip"
	})
	want = []string{"ExpressionStatement", "BinaryExpression"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("Inspect with pruning visited %v, want %v", seen, want)
	}
}

func TestScope(t *testing.T) {
	root := NewScope(nil)
	fn := NewScope(root)
	block := NewScope(fn)

	x := &Node{Value: "X"}
	fn.Declarations["x"] = x
	if got := block.Lookup("x"); got != x {
		t.Errorf("Lookup from nested block = %v, want %v", got, x)
	}
	if got := root.Lookup("x"); got != nil {
		t.Errorf("Lookup from root = %v, want nil", got)
	}
	if block.LabelScope() != fn || fn.LabelScope() != fn {
		t.Error("label scope should be the function scope")
	}
	if root.LabelScope() != root {
		t.Error("label scope of the root should be the root")
	}

	l := &Node{Value: "Done"}
	fn.Labels["done"] = l
	if got := block.FindLabel("DONE"); got != l {
		t.Errorf("FindLabel = %v, want %v", got, l)
	}
	if block.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", block.Depth())
	}
}

func TestMarshalJSON(t *testing.T) {
	elseif := &Node{Type: ElseifStatement, ID: "elseif", Test: &Node{Type: Identifier, Value: "y"}}
	n := &Node{
		Type:      IfStatement,
		ID:        "if",
		Arity:     "statement",
		Test:      &Node{Type: Identifier, Value: "x"},
		Alternate: []*Node{elseif},
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got["type"] != "IfStatement" {
		t.Errorf("type = %v", got["type"])
	}
	if v, ok := got["consequent"]; !ok || v != nil {
		t.Errorf("consequent = %v, %v; want explicit null", v, ok)
	}
	alt, ok := got["alternate"].(map[string]any)
	if !ok || alt["type"] != "ElseifStatement" {
		t.Errorf("alternate = %v, want an ElseifStatement object", got["alternate"])
	}
	test, ok := got["test"].(map[string]any)
	if !ok || test["value"] != "x" {
		t.Errorf("test = %v", got["test"])
	}
}
