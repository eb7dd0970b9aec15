package query

import (
	"errors"
	"testing"

	"github.com/vegasq/kqlplay/table"
)

func testRecord(t *testing.T, pairs ...interface{}) Record {
	t.Helper()
	rec, err := NewRecord(pairs...)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	return rec
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name    string
		lit     *Literal
		want    table.Value
		wantErr bool
	}{
		{"double quoted", &Literal{Kind: LiteralString, Text: `"FLORIDA"`}, table.String("FLORIDA"), false},
		{"single quoted", &Literal{Kind: LiteralString, Text: `'Hail'`}, table.String("Hail"), false},
		{"unquoted string", &Literal{Kind: LiteralString, Text: `abc`}, table.String("abc"), false},
		{"int", &Literal{Kind: LiteralInt, Text: "10000"}, table.Int32(10000), false},
		{"int overflow", &Literal{Kind: LiteralInt, Text: "3000000000"}, table.Null(), true},
		{"long", &Literal{Kind: LiteralLong, Text: "3000000000"}, table.Int64(3000000000), false},
		{"real", &Literal{Kind: LiteralReal, Text: "1.101"}, table.Float64(1.101), false},
		{"bool upper", &Literal{Kind: LiteralBool, Text: "TRUE"}, table.Bool(true), false},
		{"bool false", &Literal{Kind: LiteralBool, Text: "false"}, table.Bool(false), false},
		{"bad bool", &Literal{Kind: LiteralBool, Text: "yes"}, table.Null(), true},
		{"bad real", &Literal{Kind: LiteralReal, Text: "1,5"}, table.Null(), true},
		{"other", &Literal{Kind: LiteralOther, Text: "datetime(2025-01-01)"}, table.String("datetime(2025-01-01)"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLiteral(tt.lit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLiteral() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseLiteral() = %v (%s), want %v (%s)", got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestEvaluator_EvalOperand(t *testing.T) {
	e := NewEvaluator(nil)
	rec := testRecord(t, "Name", "Alice", "Age", int32(30), "Score", 2.5, "Flag", true)

	tests := []struct {
		name string
		expr Expr
		want table.Value
	}{
		{"column", Col("Name"), table.String("Alice")},
		{"absent column", Col("Missing"), table.Null()},
		{"negate int", &Unary{Op: OpMinus, Operand: Col("Age")}, table.Int32(-30)},
		{"negate real", &Unary{Op: OpMinus, Operand: Col("Score")}, table.Float64(-2.5)},
		{"negate long literal", &Unary{Op: OpMinus, Operand: Long(5)}, table.Int64(-5)},
		{"plus", &Unary{Op: OpPlus, Operand: Col("Name")}, table.String("Alice")},
		{"not", &Unary{Op: OpNot, Operand: Col("Flag")}, table.Bool(false)},
		{"binary as operand", Bin(OpGreater, Col("Age"), Int(18)), table.Bool(true)},
		{"call", Fn("toupper", Col("Name")), table.String("ALICE")},
		{"nested call", Fn("strlen", Fn("base64_encode_tostring", Col("Name"))), table.Int64(8)},
		{"named", As("x", Col("Age")), table.Int32(30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.EvalOperand(tt.expr, rec)
			if err != nil {
				t.Fatalf("EvalOperand() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("EvalOperand() = %v (%s), want %v (%s)", got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestEvaluator_EvalOperandErrors(t *testing.T) {
	e := NewEvaluator(nil)
	rec := testRecord(t, "Name", "Alice", "Small", int16(3), "Nothing", nil)

	tests := []struct {
		name    string
		expr    Expr
		wantErr error
	}{
		{"negate string", &Unary{Op: OpMinus, Operand: Col("Name")}, ErrUnsupportedUnaryOperand},
		{"negate int16", &Unary{Op: OpMinus, Operand: Col("Small")}, ErrUnsupportedUnaryOperand},
		{"negate null", &Unary{Op: OpMinus, Operand: Col("Nothing")}, ErrUnsupportedUnaryOperand},
		{"not string", &Unary{Op: OpNot, Operand: Col("Name")}, ErrUnsupportedUnaryOperand},
		{"unknown function", Fn("nope"), ErrUnknownFunction},
		{"arity", Fn("strlen"), ErrArgumentCount},
		{"nil expression", nil, ErrUnsupportedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.EvalOperand(tt.expr, rec); !errors.Is(err, tt.wantErr) {
				t.Errorf("EvalOperand() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluator_EvaluateCondition(t *testing.T) {
	e := NewEvaluator(nil)
	rec := testRecord(t,
		"State", "FLORIDA",
		"Damage", int64(20000),
		"Code", "-2",
		"Flag", false,
		"Count", int32(0),
		"Nothing", nil,
		"Color", "Red",
	)

	tests := []struct {
		name string
		expr Expr
		want bool
	}{
		{"equal", Bin(OpEqual, Col("State"), Str("FLORIDA")), true},
		{"equal is case-sensitive", Bin(OpEqual, Col("Color"), Str("red")), false},
		{"tilde ignores case", Bin(OpEqualTilde, Col("Color"), Str("red")), true},
		{"bang tilde", Bin(OpBangTilde, Col("Color"), Str("RED")), false},
		{"not equal", Bin(OpNotEqual, Col("State"), Str("TEXAS")), true},
		{"string column vs negative int", Bin(OpEqual, Col("Code"), &Unary{Op: OpMinus, Operand: Int(2)}), true},
		{"greater", Bin(OpGreater, Col("Damage"), Int(10000)), true},
		{"less equal", Bin(OpLessEqual, Col("Damage"), Long(20000)), true},
		{"less", Bin(OpLess, Col("Damage"), Real(1e4)), false},
		{"bool ordering", Bin(OpLess, Col("Flag"), BoolLit(true)), true},
		{"and", Bin(OpAnd, Bin(OpEqual, Col("State"), Str("FLORIDA")), Bin(OpGreater, Col("Damage"), Int(10000))), true},
		{"or", Bin(OpOr, Bin(OpEqual, Col("State"), Str("TEXAS")), Col("Damage")), true},
		{"contains", Bin(OpContains, Col("State"), Str("lori")), true},
		{"not contains", Bin(OpNotContains, Col("State"), Str("lori")), false},
		{"startswith", Bin(OpStartsWith, Col("State"), Str("flo")), true},
		{"not startswith", Bin(OpNotStartsWith, Col("State"), Str("flo")), false},
		{"endswith", Bin(OpEndsWith, Col("State"), Str("da")), true},
		{"not endswith", Bin(OpNotEndsWith, Col("State"), Str("da")), false},
		{"bool column", Col("Flag"), false},
		{"non-bool column is truthy", Col("Count"), true},
		{"null column is falsy", Col("Nothing"), false},
		{"absent column is falsy", Col("Missing"), false},
		{"bool literal", BoolLit(true), true},
		{"negated condition", &Unary{Op: OpNot, Operand: Bin(OpEqual, Col("State"), Str("TEXAS"))}, true},
		{"null equals null", Bin(OpEqual, Col("Nothing"), Col("Missing")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.EvaluateCondition(tt.expr, rec)
			if err != nil {
				t.Fatalf("EvaluateCondition() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluator_ConditionShortCircuits(t *testing.T) {
	e := NewEvaluator(nil)
	rec := testRecord(t, "A", int32(1))

	failing := Fn("nope")
	andExpr := Bin(OpAnd, Bin(OpEqual, Col("A"), Int(2)), failing)
	if got, err := e.EvaluateCondition(andExpr, rec); err != nil || got {
		t.Errorf("false and <error> = %v, %v; want false, nil", got, err)
	}
	orExpr := Bin(OpOr, Bin(OpEqual, Col("A"), Int(1)), failing)
	if got, err := e.EvaluateCondition(orExpr, rec); err != nil || !got {
		t.Errorf("true or <error> = %v, %v; want true, nil", got, err)
	}
}

func TestEvaluator_ConditionErrors(t *testing.T) {
	e := NewEvaluator(nil)
	rec := testRecord(t, "State", "FLORIDA", "Damage", int64(5), "Nothing", nil)

	tests := []struct {
		name    string
		expr    Expr
		wantErr error
	}{
		{"ordering against null", Bin(OpGreater, Col("Nothing"), Int(1)), ErrNullComparison},
		{"ordering string vs number", Bin(OpGreater, Col("State"), Int(1)), ErrUnsupportedComparison},
		{"contains on number", Bin(OpContains, Col("Damage"), Str("5")), ErrOperandType},
		{"string literal as condition", Str("yes"), ErrUnsupportedExpression},
		{"named as condition", As("x", Col("State")), ErrUnsupportedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.EvaluateCondition(tt.expr, rec); !errors.Is(err, tt.wantErr) {
				t.Errorf("EvaluateCondition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
