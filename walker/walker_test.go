package walker

import (
	"slices"
	"strings"
	"testing"

	"github.com/dhamidi/bannockburn/ast"
	"github.com/dhamidi/bannockburn/parser"
)

func parse(t *testing.T, src string) []*ast.Node {
	t.Helper()
	nodes, err := parser.New().Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return nodes
}

func TestParseEvents(t *testing.T) {
	tests := []struct {
		spec    string
		want    []Event
		wantErr bool
	}{
		{spec: "IfStatement", want: []Event{{Phase: Enter, Type: "IfStatement"}}},
		{spec: "*", want: []Event{{Phase: Enter, Type: "*"}}},
		{spec: "before:IfStatement.test", want: []Event{{Phase: Before, Type: "IfStatement", Field: "test"}}},
		{spec: "after:WhileStatement.body", want: []Event{{Phase: After, Type: "WhileStatement", Field: "body"}}},
		{spec: "IfStatement.test", want: []Event{
			{Phase: Before, Type: "IfStatement", Field: "test"},
			{Phase: After, Type: "IfStatement", Field: "test"},
		}},
		{spec: "before:*.body", want: []Event{{Phase: Before, Type: "*", Field: "body"}}},
		{spec: "before:IfStatement", wantErr: true},
		{spec: "during:IfStatement.test", wantErr: true},
		{spec: "IfStatement.nope", wantErr: true},
		{spec: "NoSuchStatement", wantErr: true},
		{spec: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseEvents(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEvents(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseEvents(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	for _, spec := range []string{"IfStatement", "before:IfStatement.test", "after:*.body"} {
		events, err := ParseEvents(spec)
		if err != nil {
			t.Fatal(err)
		}
		if got := events[0].String(); got != spec {
			t.Errorf("String() = %q, want %q", got, spec)
		}
	}
}

func TestFunctionDeclarationHandler(t *testing.T) {
	w, _ := New()
	called := 0
	err := w.On("FunctionDeclaration", func(v *Visit) bool {
		called++
		if v.Node.Name != "x" {
			t.Errorf("Name = %q, want x", v.Node.Name)
		}
		return false
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Start(parse(t, "function x(); end")...)
	if called != 1 {
		t.Errorf("handler called %d times, want 1", called)
	}
}

func TestEventOrder(t *testing.T) {
	src := "if a\n\tb = 1\nend\n"
	var got []string
	record := func(v *Visit) bool {
		got = append(got, v.Event.String())
		return true
	}
	w, err := New(Binding{Spec: "*", Handler: record})
	if err != nil {
		t.Fatal(err)
	}
	w.Start(parse(t, src)...)

	// edge events without handlers of their own reach the catch-all
	if len(got) == 0 || got[0] != "IfStatement" {
		t.Fatalf("events = %v", got)
	}
	joined := strings.Join(got, " ")
	for _, e := range []string{
		"before:IfStatement.test",
		"Identifier",
		"after:IfStatement.test",
		"before:IfStatement.consequent",
		"ExpressionStatement",
		"AssignmentExpression",
		"Literal",
		"after:IfStatement.consequent",
	} {
		if !strings.Contains(joined, e) {
			t.Errorf("events %v missing %s", got, e)
		}
	}
	if strings.Contains(joined, "IfStatement.alternate") {
		t.Errorf("empty alternate edge should not fire: %v", got)
	}
}

func TestPruning(t *testing.T) {
	src := "function f()\n\tif a\n\t\tx = 1\n\tend\nend\n"

	t.Run("enter", func(t *testing.T) {
		w, _ := New()
		seen := map[string]int{}
		w.On("*", func(v *Visit) bool {
			if v.Event.Phase == Enter {
				seen[v.Event.Type]++
			}
			return true
		})
		w.On("IfStatement", func(v *Visit) bool { return false })
		w.Start(parse(t, src)...)
		if seen["AssignmentExpression"] != 0 {
			t.Errorf("children of a pruned node were walked: %v", seen)
		}
	})

	t.Run("before", func(t *testing.T) {
		w, _ := New()
		var after, identifiers int
		w.On("before:IfStatement.consequent", func(v *Visit) bool { return false })
		w.On("after:IfStatement.consequent", func(v *Visit) bool { after++; return true })
		w.On("Identifier", func(v *Visit) bool { identifiers++; return true })
		w.Start(parse(t, src)...)
		if after != 0 {
			t.Errorf("after handler ran %d times for a skipped edge", after)
		}
		// only the test edge's identifier is reached
		if identifiers != 1 {
			t.Errorf("visited %d identifiers, want 1", identifiers)
		}
	})

	t.Run("short circuit", func(t *testing.T) {
		w, _ := New()
		second := false
		w.On("IfStatement", func(v *Visit) bool { return false })
		w.On("IfStatement", func(v *Visit) bool { second = true; return true })
		w.Start(parse(t, src)...)
		if second {
			t.Error("second handler ran after the first returned false")
		}
	})
}

func TestFieldWithoutPhase(t *testing.T) {
	w, _ := New()
	var phases []Phase
	err := w.On("WhileStatement.body", func(v *Visit) bool {
		phases = append(phases, v.Event.Phase)
		if len(v.Children) != 1 {
			t.Errorf("Children = %v", v.Children)
		}
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Start(parse(t, "while a\n\tb()\nend\n")...)
	if !slices.Equal(phases, []Phase{Before, After}) {
		t.Errorf("phases = %v", phases)
	}
}

func TestPath(t *testing.T) {
	w, _ := New()
	var path []string
	w.On("CallExpression", func(v *Visit) bool {
		for _, e := range v.Walker.Path() {
			path = append(path, e.Node.Type.String()+"."+e.Edge)
		}
		if p := v.Walker.Parent(); p == nil || p.Type != ast.ExpressionStatement {
			t.Errorf("Parent() = %v", p)
		}
		return true
	})
	w.Start(parse(t, "function f()\n\twhile a\n\t\tg()\n\tend\nend\n")...)

	want := []string{
		"FunctionDeclaration.body",
		"WhileStatement.body",
		"ExpressionStatement.expression",
	}
	if !slices.Equal(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
	if len(w.Path()) != 0 {
		t.Errorf("path not unwound: %v", w.Path())
	}
}

func TestOnMapAndOnAll(t *testing.T) {
	w, _ := New()
	counts := map[string]int{}
	count := func(v *Visit) bool {
		counts[v.Event.Type]++
		return true
	}
	if err := w.OnAll([]string{"BreakStatement", "ContinueStatement"}, count); err != nil {
		t.Fatal(err)
	}
	if err := w.OnMap(map[string]Handler{"RepeatStatement": count}); err != nil {
		t.Fatal(err)
	}
	if err := w.OnAll([]string{"BreakStatement", "bogus:"}, count); err == nil {
		t.Error("OnAll accepted an invalid spec")
	}

	w.Start(parse(t, "repeat\n\tbreak\n\tcontinue\nuntil a\n")...)
	// BreakStatement was registered twice
	want := map[string]int{"RepeatStatement": 1, "BreakStatement": 2, "ContinueStatement": 1}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("counts[%s] = %d, want %d", k, counts[k], v)
		}
	}
}

func TestWildcardEdge(t *testing.T) {
	w, _ := New()
	var owners []string
	w.On("before:*.body", func(v *Visit) bool {
		owners = append(owners, v.Node.Type.String())
		return true
	})
	w.Start(parse(t, "function f()\n\twhile a\n\t\tg()\n\tend\nend\n")...)
	if !slices.Equal(owners, []string{"FunctionDeclaration", "WhileStatement"}) {
		t.Errorf("owners = %v", owners)
	}
}

// Every edge a handler can see holds either nil or a non-empty slice.
func TestNormalizedChildren(t *testing.T) {
	src := "function f(a, b = 2)\n\tInteger i\n\tfor i = 1 to 10\n\t\tif a\n\t\t\treturn\n\t\telseif b\n\t\t\tbreak\n\t\tend\n\tend\n\tswitch a\n\t\tcase 1, 2\n\t\t\tb = a[1:2]\n\t\tend\n\t\tdefault\n\t\tend\n\tend\nend\n"
	w, _ := New()
	w.On("*", func(v *Visit) bool {
		if v.Event.Phase == Enter {
			for _, name := range v.Edges {
				if c := v.Node.Edge(name); c != nil && len(c) == 0 {
					t.Errorf("%s.%s is an empty non-nil slice", v.Node.Type, name)
				}
			}
			return true
		}
		if len(v.Children) == 0 {
			t.Errorf("%s fired with no children", v.Event)
		}
		return true
	})
	w.Start(parse(t, src)...)
}

func TestPositions(t *testing.T) {
	nodes := parse(t, "x = 1\ny = 2\n")
	second := nodes[1]
	if pos, ok := StartPos(second); !ok || pos != 6 {
		t.Errorf("StartPos = %d, %v", pos, ok)
	}
	if pos, ok := EndPos(second); !ok || pos != 10 {
		t.Errorf("EndPos = %d, %v", pos, ok)
	}
	if line, ok := StartLine(second); !ok || line != 2 {
		t.Errorf("StartLine = %d, %v", line, ok)
	}
	if line, ok := EndLine(second); !ok || line != 2 {
		t.Errorf("EndLine = %d, %v", line, ok)
	}
	if _, ok := StartPos(nil); ok {
		t.Error("StartPos(nil) reported ok")
	}
	if _, ok := EndLine(nil); ok {
		t.Error("EndLine(nil) reported ok")
	}
}
