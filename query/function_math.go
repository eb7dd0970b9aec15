package query

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/vegasq/kqlplay/table"
)

// Math Functions
//
// Every math function returns null for a null argument.

// AbsFunc returns the absolute value of a number, keeping its kind
type AbsFunc struct{}

func (f *AbsFunc) Name() string  { return "abs" }
func (f *AbsFunc) MinArity() int { return 1 }
func (f *AbsFunc) MaxArity() int { return 1 }
func (f *AbsFunc) Evaluate(args []table.Value) (table.Value, error) {
	v := args[0]
	switch v.Kind() {
	case table.KindNull:
		return v, nil
	case table.KindInt8, table.KindInt16, table.KindInt32, table.KindInt64:
		n, _ := v.AsInt64()
		if n >= 0 {
			return v, nil
		}
		return absInt(v.Kind(), n), nil
	case table.KindUint8, table.KindUint16, table.KindUint32, table.KindUint64:
		return v, nil
	case table.KindFloat32:
		x, _ := v.AsFloat64()
		return table.Float32(float32(math.Abs(x))), nil
	case table.KindDecimal:
		d, _ := v.AsDecimal()
		return table.Decimal(d.Abs()), nil
	}
	x, err := numberArg("abs", v)
	if err != nil {
		return table.Null(), err
	}
	return table.Float64(math.Abs(x)), nil
}

// absInt negates a negative signed integer. The minimum value of a kind has
// no positive counterpart there, so it moves to the next wider kind; the
// minimum int64 becomes a decimal.
func absInt(kind table.Kind, n int64) table.Value {
	switch kind {
	case table.KindInt8:
		if n == math.MinInt8 {
			return table.Int16(-int16(n))
		}
		return table.Int8(int8(-n))
	case table.KindInt16:
		if n == math.MinInt16 {
			return table.Int32(-int32(n))
		}
		return table.Int16(int16(-n))
	case table.KindInt32:
		if n == math.MinInt32 {
			return table.Int64(-n)
		}
		return table.Int32(int32(-n))
	default:
		if n == math.MinInt64 {
			return table.Decimal(decimal.New(n, 0).Neg())
		}
		return table.Int64(-n)
	}
}

// RoundFunc rounds a number to the specified number of decimal places
type RoundFunc struct{}

func (f *RoundFunc) Name() string  { return "round" }
func (f *RoundFunc) MinArity() int { return 1 }
func (f *RoundFunc) MaxArity() int { return 2 }
func (f *RoundFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	if d, ok := args[0].AsDecimal(); ok && len(args) == 1 {
		return table.Decimal(d.Round(0)), nil
	}
	num, err := numberArg("round", args[0])
	if err != nil {
		return table.Null(), err
	}

	// Default to 0 decimal places
	decimals := 0.0
	if len(args) == 2 {
		decimals, err = numberArg("round", args[1])
		if err != nil {
			return table.Null(), fmt.Errorf("%w (precision)", err)
		}
	}

	multiplier := math.Pow(10, math.Trunc(decimals))
	return table.Float64(math.Round(num*multiplier) / multiplier), nil
}

// CeilingFunc returns the smallest integer greater than or equal to a number
type CeilingFunc struct{}

func (f *CeilingFunc) Name() string  { return "ceiling" }
func (f *CeilingFunc) MinArity() int { return 1 }
func (f *CeilingFunc) MaxArity() int { return 1 }
func (f *CeilingFunc) Evaluate(args []table.Value) (table.Value, error) {
	return unaryMath("ceiling", args[0], math.Ceil)
}

// SqrtFunc returns the square root of a number; negative input yields NaN
type SqrtFunc struct{}

func (f *SqrtFunc) Name() string  { return "sqrt" }
func (f *SqrtFunc) MinArity() int { return 1 }
func (f *SqrtFunc) MaxArity() int { return 1 }
func (f *SqrtFunc) Evaluate(args []table.Value) (table.Value, error) {
	return unaryMath("sqrt", args[0], math.Sqrt)
}

// ExpFunc returns e raised to a number
type ExpFunc struct{}

func (f *ExpFunc) Name() string  { return "exp" }
func (f *ExpFunc) MinArity() int { return 1 }
func (f *ExpFunc) MaxArity() int { return 1 }
func (f *ExpFunc) Evaluate(args []table.Value) (table.Value, error) {
	return unaryMath("exp", args[0], math.Exp)
}

// LogFunc returns the natural logarithm of a number
type LogFunc struct{}

func (f *LogFunc) Name() string  { return "log" }
func (f *LogFunc) MinArity() int { return 1 }
func (f *LogFunc) MaxArity() int { return 1 }
func (f *LogFunc) Evaluate(args []table.Value) (table.Value, error) {
	return unaryMath("log", args[0], math.Log)
}

// PowFunc raises a base to an exponent
type PowFunc struct{}

func (f *PowFunc) Name() string  { return "pow" }
func (f *PowFunc) MinArity() int { return 2 }
func (f *PowFunc) MaxArity() int { return 2 }
func (f *PowFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return table.Null(), nil
	}
	base, err := numberArg("pow", args[0])
	if err != nil {
		return table.Null(), err
	}
	exp, err := numberArg("pow", args[1])
	if err != nil {
		return table.Null(), err
	}
	return table.Float64(math.Pow(base, exp)), nil
}

// SignFunc returns -1, 0 or 1 as the sign of a number
type SignFunc struct{}

func (f *SignFunc) Name() string  { return "sign" }
func (f *SignFunc) MinArity() int { return 1 }
func (f *SignFunc) MaxArity() int { return 1 }
func (f *SignFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	num, err := numberArg("sign", args[0])
	if err != nil {
		return table.Null(), err
	}
	switch {
	case num > 0:
		return table.Int64(1), nil
	case num < 0:
		return table.Int64(-1), nil
	default:
		return table.Int64(0), nil
	}
}

func unaryMath(fn string, v table.Value, op func(float64) float64) (table.Value, error) {
	if v.IsNull() {
		return table.Null(), nil
	}
	x, err := numberArg(fn, v)
	if err != nil {
		return table.Null(), err
	}
	return table.Float64(op(x)), nil
}

// numberArg widens any numeric value to float64.
func numberArg(fn string, v table.Value) (float64, error) {
	x, ok := v.AsFloat64()
	if !ok {
		return 0, fmt.Errorf("%s: %w: expected number, got %s", fn, ErrOperandType, v.Kind())
	}
	return x, nil
}
