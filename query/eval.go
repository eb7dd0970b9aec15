package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/kqlplay/table"
)

// Evaluator evaluates expressions against a single record.
type Evaluator struct {
	functions *FunctionRegistry
}

// NewEvaluator creates an evaluator dispatching calls to functions. A nil
// registry means DefaultFunctions.
func NewEvaluator(functions *FunctionRegistry) *Evaluator {
	if functions == nil {
		functions = DefaultFunctions()
	}
	return &Evaluator{functions: functions}
}

// EvalOperand evaluates expr to a scalar value.
func (e *Evaluator) EvalOperand(expr Expr, rec Record) (table.Value, error) {
	switch node := expr.(type) {
	case *NameRef:
		return rec.Get(node.Name), nil
	case *Literal:
		return ParseLiteral(node)
	case *Unary:
		return e.evalUnary(node, rec)
	case *Binary:
		ok, err := e.evalBinary(node, rec)
		if err != nil {
			return table.Null(), err
		}
		return table.Bool(ok), nil
	case *Call:
		return e.evalCall(node, rec)
	case *Named:
		return e.EvalOperand(node.Expr, rec)
	case nil:
		return table.Null(), fmt.Errorf("%w: missing expression", ErrUnsupportedExpression)
	default:
		return table.Null(), fmt.Errorf("%w: %s", ErrUnsupportedExpression, expr.NodeKind())
	}
}

// EvaluateCondition evaluates expr as a boolean condition.
//
// A column reference or call that does not yield a bool is true when non-null.
func (e *Evaluator) EvaluateCondition(expr Expr, rec Record) (bool, error) {
	switch node := expr.(type) {
	case *Binary:
		return e.evalBinary(node, rec)
	case *NameRef, *Call:
		v, err := e.EvalOperand(node, rec)
		if err != nil {
			return false, err
		}
		return truthy(v), nil
	case *Literal, *Unary:
		v, err := e.EvalOperand(node, rec)
		if err != nil {
			return false, err
		}
		b, ok := v.AsBool()
		if !ok {
			return false, fmt.Errorf("%w: %s of type %s used as condition",
				ErrUnsupportedExpression, node.NodeKind(), v.Kind())
		}
		return b, nil
	case nil:
		return false, fmt.Errorf("%w: missing condition", ErrUnsupportedExpression)
	default:
		return false, fmt.Errorf("%w: %s used as condition", ErrUnsupportedExpression, expr.NodeKind())
	}
}

func truthy(v table.Value) bool {
	if b, ok := v.AsBool(); ok {
		return b
	}
	return !v.IsNull()
}

func (e *Evaluator) evalBinary(node *Binary, rec Record) (bool, error) {
	switch node.Op {
	case OpAnd:
		left, err := e.EvaluateCondition(node.Left, rec)
		if err != nil || !left {
			return false, err
		}
		return e.EvaluateCondition(node.Right, rec)
	case OpOr:
		left, err := e.EvaluateCondition(node.Left, rec)
		if err != nil || left {
			return left, err
		}
		return e.EvaluateCondition(node.Right, rec)
	}

	left, err := e.EvalOperand(node.Left, rec)
	if err != nil {
		return false, err
	}
	right, err := e.EvalOperand(node.Right, rec)
	if err != nil {
		return false, err
	}

	switch node.Op {
	case OpEqual:
		return AreEqual(left, right, Ordinal), nil
	case OpNotEqual:
		return !AreEqual(left, right, Ordinal), nil
	case OpEqualTilde:
		return AreEqual(left, right, OrdinalIgnoreCase), nil
	case OpBangTilde:
		return !AreEqual(left, right, OrdinalIgnoreCase), nil
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		c, err := Compare(left, right)
		if err != nil {
			return false, fmt.Errorf("'%s': %w", node.Op, err)
		}
		return orderHolds(node.Op, c), nil
	case OpContains:
		return Contains(left, right)
	case OpNotContains:
		ok, err := Contains(left, right)
		return !ok, err
	case OpStartsWith:
		return StartsWith(left, right)
	case OpNotStartsWith:
		ok, err := StartsWith(left, right)
		return !ok, err
	case OpEndsWith:
		return EndsWith(left, right)
	case OpNotEndsWith:
		ok, err := EndsWith(left, right)
		return !ok, err
	default:
		return false, fmt.Errorf("%w: binary operator %s", ErrUnsupportedExpression, node.Op)
	}
}

func orderHolds(op BinaryOp, c int) bool {
	switch op {
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	default:
		return c >= 0
	}
}

func (e *Evaluator) evalUnary(node *Unary, rec Record) (table.Value, error) {
	v, err := e.EvalOperand(node.Operand, rec)
	if err != nil {
		return table.Null(), err
	}

	switch node.Op {
	case OpPlus:
		return v, nil
	case OpMinus:
		switch v.Kind() {
		case table.KindInt32:
			n, _ := v.AsInt64()
			return table.Int32(-int32(n)), nil
		case table.KindInt64:
			n, _ := v.AsInt64()
			return table.Int64(-n), nil
		case table.KindFloat32:
			f, _ := v.AsFloat64()
			return table.Float32(-float32(f)), nil
		case table.KindFloat64:
			f, _ := v.AsFloat64()
			return table.Float64(-f), nil
		}
	case OpNot:
		if b, ok := v.AsBool(); ok {
			return table.Bool(!b), nil
		}
	default:
		return table.Null(), fmt.Errorf("%w: unary operator %s", ErrUnsupportedExpression, node.Op)
	}
	return table.Null(), fmt.Errorf("%w: '%s' on %s", ErrUnsupportedUnaryOperand, node.Op, v.Kind())
}

func (e *Evaluator) evalCall(node *Call, rec Record) (table.Value, error) {
	args := make([]table.Value, len(node.Args))
	for i, arg := range node.Args {
		v, err := e.EvalOperand(arg, rec)
		if err != nil {
			return table.Null(), fmt.Errorf("%s: argument %d: %w", node.Name, i+1, err)
		}
		args[i] = v
	}
	return e.functions.Call(node.Name, args)
}

// ParseLiteral converts a literal's token text into a value: int → int32,
// long → int64, real → float64, bool → bool, string → unquoted text and
// anything else → the raw text.
func ParseLiteral(lit *Literal) (table.Value, error) {
	text := strings.TrimSpace(lit.Text)
	switch lit.Kind {
	case LiteralString:
		return table.String(unquote(text)), nil
	case LiteralInt:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return table.Null(), fmt.Errorf("invalid int literal %q: %w", lit.Text, err)
		}
		return table.Int32(int32(n)), nil
	case LiteralLong:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return table.Null(), fmt.Errorf("invalid long literal %q: %w", lit.Text, err)
		}
		return table.Int64(n), nil
	case LiteralReal:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return table.Null(), fmt.Errorf("invalid real literal %q: %w", lit.Text, err)
		}
		return table.Float64(f), nil
	case LiteralBool:
		switch strings.ToLower(text) {
		case "true":
			return table.Bool(true), nil
		case "false":
			return table.Bool(false), nil
		}
		return table.Null(), fmt.Errorf("invalid bool literal %q", lit.Text)
	default:
		return table.String(lit.Text), nil
	}
}

// unquote strips one pair of matching surrounding quote characters.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
