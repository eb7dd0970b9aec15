package query

import (
	"fmt"

	"github.com/vegasq/kqlplay/table"
)

// ApplyFilter keeps the records for which cond evaluates to true.
func (e *Evaluator) ApplyFilter(rows []Record, cond Expr) ([]Record, error) {
	result := make([]Record, 0, len(rows))
	for _, row := range rows {
		match, err := e.EvaluateCondition(cond, row)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
		if match {
			result = append(result, row)
		}
	}
	return result, nil
}

// ApplyProject builds new records holding only the listed columns, in order.
// Items are column references or aliases of a column reference.
func (e *Evaluator) ApplyProject(rows []Record, items []Expr) ([]Record, error) {
	type selected struct{ from, to string }
	cols := make([]selected, 0, len(items))
	for _, item := range items {
		switch node := item.(type) {
		case *NameRef:
			cols = append(cols, selected{from: node.Name, to: node.Name})
		case *Named:
			ref, ok := node.Expr.(*NameRef)
			if !ok {
				return nil, fmt.Errorf("%w: '%s' must alias a column, got %s",
					ErrUnsupportedProjection, node.Name, nodeKind(node.Expr))
			}
			cols = append(cols, selected{from: ref.Name, to: node.Name})
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedProjection, nodeKind(item))
		}
	}

	result := make([]Record, 0, len(rows))
	for _, row := range rows {
		out := makeRecord(len(cols))
		for _, c := range cols {
			out.set(c.to, row.Get(c.from))
		}
		result = append(result, out)
	}
	return result, nil
}

// ApplyTake keeps at most the first n records, where n is an int or long
// literal. A negative n keeps nothing.
func (e *Evaluator) ApplyTake(rows []Record, count Expr) ([]Record, error) {
	lit, ok := count.(*Literal)
	if !ok || (lit.Kind != LiteralInt && lit.Kind != LiteralLong) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTakeArgument, describe(count))
	}
	v, err := ParseLiteral(lit)
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	n, _ := v.AsInt64()

	switch {
	case n <= 0:
		return []Record{}, nil
	case n >= int64(len(rows)):
		return rows, nil
	default:
		return rows[:n], nil
	}
}

// ApplyExtend adds or overwrites columns on a copy of every record. Items are
// evaluated left to right, so later items see the columns set by earlier ones.
func (e *Evaluator) ApplyExtend(rows []Record, items []Expr) ([]Record, error) {
	for _, item := range items {
		switch item.(type) {
		case *NameRef, *Named, *Call:
		default:
			return nil, fmt.Errorf("%w: extend item %s", ErrUnsupportedExpression, nodeKind(item))
		}
	}

	result := make([]Record, 0, len(rows))
	for _, row := range rows {
		out := row.clone()
		for _, item := range items {
			name, expr := extendTarget(item)
			v, err := e.EvalOperand(expr, out)
			if err != nil {
				return nil, fmt.Errorf("extend '%s': %w", name, err)
			}
			out.set(name, v)
		}
		result = append(result, out)
	}
	return result, nil
}

func extendTarget(item Expr) (string, Expr) {
	switch node := item.(type) {
	case *Named:
		return node.Name, node.Expr
	case *Call:
		return node.Name, node
	case *NameRef:
		return node.Name, node
	}
	return "", item
}

// applyOperator dispatches one pipeline stage.
func (e *Evaluator) applyOperator(rows []Record, op Operator) ([]Record, error) {
	switch stage := op.(type) {
	case *Filter:
		return e.ApplyFilter(rows, stage.Condition)
	case *Project:
		return e.ApplyProject(rows, stage.Items)
	case *Take:
		return e.ApplyTake(rows, stage.Count)
	case *Extend:
		return e.ApplyExtend(rows, stage.Items)
	case nil:
		return nil, fmt.Errorf("%w: missing operator", ErrUnsupportedExpression)
	default:
		return nil, fmt.Errorf("%w: operator %s", ErrUnsupportedExpression, op.NodeKind())
	}
}

func nodeKind(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.NodeKind()
}

func describe(expr Expr) string {
	if lit, ok := expr.(*Literal); ok {
		return fmt.Sprintf("%s literal %q", lit.Kind, lit.Text)
	}
	return nodeKind(expr)
}

// recordsFromRows converts a table snapshot into pipeline records.
func recordsFromRows(rows []*table.Row) []Record {
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = recordFromRow(row)
	}
	return out
}
