package query

import (
	"fmt"
	"strconv"
)

// Node is any node of a query expression tree.
type Node interface {
	// NodeKind names the node shape, e.g. "pipe" or "binary".
	NodeKind() string
}

// Source produces the row sequence a query starts from: a table reference or
// a pipe whose left side is itself a source.
type Source interface {
	Node
	sourceNode()
}

// Operator is one pipeline stage.
type Operator interface {
	Node
	operatorNode()
}

// Expr is a scalar or boolean expression evaluated against one row.
type Expr interface {
	Node
	exprNode()
}

// TableRef names a registered table.
type TableRef struct {
	Name string
}

// Pipe applies Operator to the rows produced by Source.
type Pipe struct {
	Source   Source
	Operator Operator
}

// Filter keeps rows whose Condition evaluates to true ("where").
type Filter struct {
	Condition Expr
}

// Project keeps only the listed columns. Items are *NameRef or *Named
// wrapping a *NameRef.
type Project struct {
	Items []Expr
}

// Take keeps at most Count rows. Count must be an integer literal.
type Take struct {
	Count Expr
}

// Extend adds or overwrites columns. Items are *NameRef, *Named or *Call.
type Extend struct {
	Items []Expr
}

// NameRef references a column by name.
type NameRef struct {
	Name string
}

// LiteralKind tags the token a literal was parsed from.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralInt
	LiteralLong
	LiteralReal
	LiteralBool
	LiteralOther
)

var literalKindNames = map[LiteralKind]string{
	LiteralString: "string",
	LiteralInt:    "int",
	LiteralLong:   "long",
	LiteralReal:   "real",
	LiteralBool:   "bool",
	LiteralOther:  "other",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// Literal is a constant kept as its token text; it is parsed at evaluation.
type Literal struct {
	Kind LiteralKind
	Text string
}

// BinaryOp is the operator of a binary expression.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEqual
	OpNotEqual
	OpEqualTilde
	OpBangTilde
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpContains
	OpNotContains
	OpStartsWith
	OpNotStartsWith
	OpEndsWith
	OpNotEndsWith
)

var binaryOpTokens = map[BinaryOp]string{
	OpAnd:           "and",
	OpOr:            "or",
	OpEqual:         "==",
	OpNotEqual:      "!=",
	OpEqualTilde:    "=~",
	OpBangTilde:     "!~",
	OpLess:          "<",
	OpLessEqual:     "<=",
	OpGreater:       ">",
	OpGreaterEqual:  ">=",
	OpContains:      "contains",
	OpNotContains:   "!contains",
	OpStartsWith:    "startswith",
	OpNotStartsWith: "!startswith",
	OpEndsWith:      "endswith",
	OpNotEndsWith:   "!endswith",
}

func (op BinaryOp) String() string {
	if tok, ok := binaryOpTokens[op]; ok {
		return tok
	}
	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// ParseBinaryOp resolves an operator token such as "==" or "!contains".
func ParseBinaryOp(token string) (BinaryOp, bool) {
	for op, tok := range binaryOpTokens {
		if tok == token {
			return op, true
		}
	}
	return 0, false
}

// Binary is a logical, comparison or string-predicate expression.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpMinus UnaryOp = iota
	OpPlus
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpMinus:
		return "-"
	case OpPlus:
		return "+"
	case OpNot:
		return "!"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// Unary is a prefix expression such as -x or !x.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Call invokes a scalar function by name.
type Call struct {
	Name string
	Args []Expr
}

// Named binds Expr to a column name ("alias = expr").
type Named struct {
	Name string
	Expr Expr
}

func (*TableRef) NodeKind() string { return "table" }
func (*Pipe) NodeKind() string     { return "pipe" }
func (*Filter) NodeKind() string   { return "where" }
func (*Project) NodeKind() string  { return "project" }
func (*Take) NodeKind() string     { return "take" }
func (*Extend) NodeKind() string   { return "extend" }
func (*NameRef) NodeKind() string  { return "name" }
func (*Literal) NodeKind() string  { return "literal" }
func (*Binary) NodeKind() string   { return "binary" }
func (*Unary) NodeKind() string    { return "unary" }
func (*Call) NodeKind() string     { return "call" }
func (*Named) NodeKind() string    { return "named" }

func (*TableRef) sourceNode() {}
func (*Pipe) sourceNode()     {}

func (*Filter) operatorNode()  {}
func (*Project) operatorNode() {}
func (*Take) operatorNode()    {}
func (*Extend) operatorNode()  {}

func (*NameRef) exprNode() {}
func (*Literal) exprNode() {}
func (*Binary) exprNode()  {}
func (*Unary) exprNode()   {}
func (*Call) exprNode()    {}
func (*Named) exprNode()   {}

// Tree construction helpers, used by front-ends and tests.

// Pipeline chains ops onto src left to right.
func Pipeline(src Source, ops ...Operator) Source {
	for _, op := range ops {
		src = &Pipe{Source: src, Operator: op}
	}
	return src
}

// From references a table.
func From(name string) *TableRef { return &TableRef{Name: name} }

// Where builds a filter stage.
func Where(cond Expr) *Filter { return &Filter{Condition: cond} }

// ProjectOf builds a project stage.
func ProjectOf(items ...Expr) *Project { return &Project{Items: items} }

// TakeN builds a take stage with an int literal count.
func TakeN(n int) *Take { return &Take{Count: Int(int64(n))} }

// ExtendOf builds an extend stage.
func ExtendOf(items ...Expr) *Extend { return &Extend{Items: items} }

// Col references a column.
func Col(name string) *NameRef { return &NameRef{Name: name} }

// As names an expression.
func As(name string, e Expr) *Named { return &Named{Name: name, Expr: e} }

// Fn calls a scalar function.
func Fn(name string, args ...Expr) *Call { return &Call{Name: name, Args: args} }

// Bin builds a binary expression.
func Bin(op BinaryOp, left, right Expr) *Binary { return &Binary{Op: op, Left: left, Right: right} }

// Str builds a double-quoted string literal.
func Str(s string) *Literal { return &Literal{Kind: LiteralString, Text: `"` + s + `"`} }

// Int builds an int literal.
func Int(n int64) *Literal {
	return &Literal{Kind: LiteralInt, Text: strconv.FormatInt(n, 10)}
}

// Long builds a long literal.
func Long(n int64) *Literal {
	return &Literal{Kind: LiteralLong, Text: strconv.FormatInt(n, 10)}
}

// Real builds a real literal.
func Real(f float64) *Literal {
	return &Literal{Kind: LiteralReal, Text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// BoolLit builds a boolean literal.
func BoolLit(b bool) *Literal {
	return &Literal{Kind: LiteralBool, Text: strconv.FormatBool(b)}
}
