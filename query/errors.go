package query

import "errors"

var (
	// ErrUnknownTable is returned when a table reference names no registered table.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnsupportedExpression is returned for tree shapes the evaluator does not implement.
	ErrUnsupportedExpression = errors.New("unsupported expression")
	// ErrUnsupportedProjection is returned for project items other than column references.
	ErrUnsupportedProjection = errors.New("unsupported project expression")
	// ErrUnsupportedTakeArgument is returned when take is not given an integer literal.
	ErrUnsupportedTakeArgument = errors.New("take must be a literal integer")
	// ErrUnsupportedUnaryOperand is returned when a prefix operator gets an operand it cannot apply to.
	ErrUnsupportedUnaryOperand = errors.New("unsupported unary operand")
	// ErrUnsupportedComparison is returned when two values have no common ordering.
	ErrUnsupportedComparison = errors.New("unsupported comparison")
	// ErrNullComparison is returned when an ordering comparison sees a null operand.
	ErrNullComparison = errors.New("cannot compare null values")
	// ErrOperandType is returned when a string predicate gets a non-string operand.
	ErrOperandType = errors.New("invalid operand type")
	// ErrArgumentCount is returned when a function is called with the wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrUnknownFunction is returned when a call names no registered function.
	ErrUnknownFunction = errors.New("unknown function")
)
