package query

import (
	"encoding/json"
	"fmt"
	"io"
)

// treeNode is the wire form of every expression-tree node. Only the fields
// used by a node's kind are set.
type treeNode struct {
	Kind      string            `json:"kind"`
	Name      string            `json:"name,omitempty"`
	Source    json.RawMessage   `json:"source,omitempty"`
	Operator  json.RawMessage   `json:"operator,omitempty"`
	Condition json.RawMessage   `json:"condition,omitempty"`
	Items     []json.RawMessage `json:"items,omitempty"`
	Count     json.RawMessage   `json:"count,omitempty"`
	Type      string            `json:"type,omitempty"`
	Text      json.RawMessage   `json:"text,omitempty"`
	Op        string            `json:"op,omitempty"`
	Left      json.RawMessage   `json:"left,omitempty"`
	Right     json.RawMessage   `json:"right,omitempty"`
	Operand   json.RawMessage   `json:"operand,omitempty"`
	Args      []json.RawMessage `json:"args,omitempty"`
	Expr      json.RawMessage   `json:"expr,omitempty"`
}

var literalKindsByName = map[string]LiteralKind{
	"string": LiteralString,
	"int":    LiteralInt,
	"long":   LiteralLong,
	"real":   LiteralReal,
	"bool":   LiteralBool,
	"other":  LiteralOther,
}

// DecodeQuery reads a JSON-encoded query tree whose root is a source node.
func DecodeQuery(r io.Reader) (Source, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode query tree: %w", err)
	}
	return ParseQueryTree(raw)
}

// ParseQueryTree parses a JSON-encoded query tree whose root is a source node.
func ParseQueryTree(data []byte) (Source, error) {
	if err := validateQueryLength(data); err != nil {
		return nil, err
	}
	return decodeSource(data, 0)
}

func decodeNode(data json.RawMessage, depth int) (*treeNode, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("%w: missing node", ErrUnsupportedExpression)
	}
	var n treeNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("invalid tree node: %w", err)
	}
	if err := validateName(n.Name); err != nil {
		return nil, err
	}
	return &n, nil
}

func decodeSource(data json.RawMessage, depth int) (Source, error) {
	n, err := decodeNode(data, depth)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "table":
		if n.Name == "" {
			return nil, fmt.Errorf("table node: missing name")
		}
		return &TableRef{Name: n.Name}, nil
	case "pipe":
		src, err := decodeSource(n.Source, depth+1)
		if err != nil {
			return nil, fmt.Errorf("pipe source: %w", err)
		}
		op, err := decodeOperator(n.Operator, depth+1)
		if err != nil {
			return nil, fmt.Errorf("pipe operator: %w", err)
		}
		return &Pipe{Source: src, Operator: op}, nil
	default:
		return nil, fmt.Errorf("%w: source kind %q", ErrUnsupportedExpression, n.Kind)
	}
}

func decodeOperator(data json.RawMessage, depth int) (Operator, error) {
	n, err := decodeNode(data, depth)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "where":
		cond, err := decodeExpr(n.Condition, depth+1)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
		return &Filter{Condition: cond}, nil
	case "project":
		items, err := decodeExprs(n.Items, depth+1)
		if err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		return &Project{Items: items}, nil
	case "take":
		count, err := decodeExpr(n.Count, depth+1)
		if err != nil {
			return nil, fmt.Errorf("take: %w", err)
		}
		return &Take{Count: count}, nil
	case "extend":
		items, err := decodeExprs(n.Items, depth+1)
		if err != nil {
			return nil, fmt.Errorf("extend: %w", err)
		}
		return &Extend{Items: items}, nil
	default:
		return nil, fmt.Errorf("%w: operator kind %q", ErrUnsupportedExpression, n.Kind)
	}
}

func decodeExprs(raw []json.RawMessage, depth int) ([]Expr, error) {
	out := make([]Expr, 0, len(raw))
	for i, data := range raw {
		e, err := decodeExpr(data, depth)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeExpr(data json.RawMessage, depth int) (Expr, error) {
	n, err := decodeNode(data, depth)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case "name":
		return &NameRef{Name: n.Name}, nil
	case "literal":
		kind, ok := literalKindsByName[n.Type]
		if !ok {
			return nil, fmt.Errorf("%w: literal type %q", ErrUnsupportedExpression, n.Type)
		}
		text, err := literalText(n.Text)
		if err != nil {
			return nil, err
		}
		return &Literal{Kind: kind, Text: text}, nil
	case "binary":
		op, ok := ParseBinaryOp(n.Op)
		if !ok {
			return nil, fmt.Errorf("%w: binary operator %q", ErrUnsupportedExpression, n.Op)
		}
		left, err := decodeExpr(n.Left, depth+1)
		if err != nil {
			return nil, fmt.Errorf("'%s' left: %w", n.Op, err)
		}
		right, err := decodeExpr(n.Right, depth+1)
		if err != nil {
			return nil, fmt.Errorf("'%s' right: %w", n.Op, err)
		}
		return &Binary{Op: op, Left: left, Right: right}, nil
	case "unary":
		var op UnaryOp
		switch n.Op {
		case "-":
			op = OpMinus
		case "+":
			op = OpPlus
		case "!", "not":
			op = OpNot
		default:
			return nil, fmt.Errorf("%w: unary operator %q", ErrUnsupportedExpression, n.Op)
		}
		operand, err := decodeExpr(n.Operand, depth+1)
		if err != nil {
			return nil, fmt.Errorf("unary '%s': %w", n.Op, err)
		}
		return &Unary{Op: op, Operand: operand}, nil
	case "call":
		args, err := decodeExprs(n.Args, depth+1)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", n.Name, err)
		}
		return &Call{Name: n.Name, Args: args}, nil
	case "named":
		e, err := decodeExpr(n.Expr, depth+1)
		if err != nil {
			return nil, fmt.Errorf("named '%s': %w", n.Name, err)
		}
		return &Named{Name: n.Name, Expr: e}, nil
	default:
		return nil, fmt.Errorf("%w: expression kind %q", ErrUnsupportedExpression, n.Kind)
	}
}

// literalText accepts the token text as a JSON string, or a bare JSON number
// or boolean for convenience.
func literalText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("literal: missing text")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true", nil
		}
		return "false", nil
	}
	return "", fmt.Errorf("literal: text must be a string, number or boolean, got %s", raw)
}
