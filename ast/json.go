package ast

import "encoding/json"

// MarshalJSON encodes a node with its declared child edges always present
// (null when empty) and every other field only when set.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() map[string]any {
	jn := map[string]any{
		"type":  n.Type.String(),
		"id":    n.ID,
		"arity": n.Arity,
		"value": n.Value,
		"range": n.Range,
		"loc":   n.Loc,
	}

	setString(jn, "operator", n.Operator)
	setString(jn, "returnType", n.ReturnType)
	setString(jn, "direction", n.Direction)
	setBool(jn, "prefix", n.Prefix)
	setBool(jn, "decl", n.Declared)
	setBool(jn, "label", n.Label)
	setBool(jn, "function", n.Function)
	setBool(jn, "nodebug", n.NoDebug)
	setBool(jn, "variadic", n.Variadic)

	switch n.Type {
	case MemberExpression:
		jn["computed"] = n.Computed
	case FunctionDeclaration:
		jn["name"] = n.Name
	case XLateExpression:
		jn["argument"] = n.Xlate
	}
	if n.Ident != nil && n.Type != FunctionDeclaration {
		jn["name"] = n.Ident
	}
	if n.DataType != nil {
		if n.Type == VariableDeclaration {
			jn["declType"] = n.DataType
		} else {
			jn["dataType"] = n.DataType
		}
	}
	if n.Type == GotoStatement && n.Argument != nil {
		jn["argument"] = n.Argument
	}

	for _, name := range Edges(n.Type) {
		jn[name] = n.edgeJSON(name)
	}
	return jn
}

// edgeJSON keeps single-valued edges as objects and lists as arrays. The
// ternary branches and an elseif chain are single nodes even though they
// share list-valued edge names.
func (n *Node) edgeJSON(name string) any {
	children := n.Edge(name)
	if children == nil {
		return nil
	}
	switch name {
	case "params", "body", "declarations", "arguments", "elements", "cases":
		return children
	case "consequent", "alternate":
		if n.Type == ConditionalExpression {
			return children[0]
		}
		if name == "alternate" && len(children) == 1 && children[0].Type == ElseifStatement {
			return children[0]
		}
		return children
	case "test":
		if n.Type == SwitchCase {
			return children
		}
	}
	return children[0]
}

func setString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func setBool(m map[string]any, key string, value bool) {
	if value {
		m[key] = true
	}
}
