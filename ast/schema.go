package ast

var edges = map[NodeType][]string{
	Parameter:             {"default"},
	FunctionDeclaration:   {"params", "body"},
	VariableDeclaration:   {"declarations"},
	VariableDeclarator:    {"init"},
	UnaryExpression:       {"argument"},
	ConditionalExpression: {"test", "consequent", "alternate"},
	MemberExpression:      {"object", "property"},
	RangeExpression:       {"object", "fromIndex", "toIndex"},
	IndexExpression:       {"object", "index"},
	CallExpression:        {"callee", "arguments"},
	ListExpression:        {"elements"},
	BinaryExpression:      {"left", "right"},
	LogicalExpression:     {"left", "right"},
	RelationalExpression:  {"left", "right"},
	AssignmentExpression:  {"left", "right"},
	IfStatement:           {"test", "consequent", "alternate"},
	ElseifStatement:       {"test", "consequent", "alternate"},
	ReturnStatement:       {"argument"},
	BreakIfStatement:      {"argument"},
	ContinueIfStatement:   {"argument"},
	WhileStatement:        {"test", "body"},
	RepeatStatement:       {"test", "body"},
	ForCStyleStatement:    {"first", "second", "third", "body"},
	ForStatement:          {"first", "second", "third", "increment", "body"},
	ForInStatement:        {"first", "body"},
	SwitchStatement:       {"discriminant", "cases"},
	SwitchCase:            {"test", "consequent"},
	ExpressionStatement:   {"expression"},
}

// Edges returns the names of the child edges of t in traversal order.
// Types without children return nil.
func Edges(t NodeType) []string {
	return edges[t]
}

// Edge returns the children of n along the named edge, or nil when the
// edge is empty or unknown.
func (n *Node) Edge(name string) []*Node {
	switch name {
	case "params":
		return list(n.Params)
	case "body":
		return list(n.Body)
	case "declarations":
		return list(n.Declarations)
	case "arguments":
		return list(n.Arguments)
	case "elements":
		return list(n.Elements)
	case "cases":
		return list(n.Cases)
	case "consequent":
		return list(n.Consequent)
	case "alternate":
		return list(n.Alternate)
	case "test":
		if n.Type == SwitchCase {
			return list(n.Tests)
		}
		return single(n.Test)
	case "left":
		return single(n.Left)
	case "right":
		return single(n.Right)
	case "object":
		return single(n.Object)
	case "property":
		return single(n.Property)
	case "callee":
		return single(n.Callee)
	case "index":
		return single(n.Index)
	case "fromIndex":
		return single(n.FromIndex)
	case "toIndex":
		return single(n.ToIndex)
	case "argument":
		return single(n.Argument)
	case "expression":
		return single(n.Expression)
	case "init":
		return single(n.Init)
	case "default":
		return single(n.Default)
	case "discriminant":
		return single(n.Discriminant)
	case "first":
		return single(n.First)
	case "second":
		return single(n.Second)
	case "third":
		return single(n.Third)
	case "increment":
		return single(n.Increment)
	}
	return nil
}

func list(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}

func single(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return []*Node{n}
}

// Children returns every child of n in edge order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, name := range Edges(n.Type) {
		out = append(out, n.Edge(name)...)
	}
	return out
}

// Inspect calls fn for n and its descendants in depth-first order. If fn
// returns false the children of that node are skipped.
func Inspect(nodes []*Node, fn func(*Node) bool) {
	for _, n := range nodes {
		if n == nil || !fn(n) {
			continue
		}
		Inspect(n.Children(), fn)
	}
}
