package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vegasq/kqlplay/table"
)

// String predicates

// Contains reports whether right occurs in left, ignoring case.
func Contains(left, right table.Value) (bool, error) {
	l, r, err := stringOperands("contains", left, right)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(l), strings.ToUpper(r)), nil
}

// StartsWith reports whether left begins with right, ignoring case.
func StartsWith(left, right table.Value) (bool, error) {
	l, r, err := stringOperands("startswith", left, right)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToUpper(l), strings.ToUpper(r)), nil
}

// EndsWith reports whether left ends with right, ignoring case.
func EndsWith(left, right table.Value) (bool, error) {
	l, r, err := stringOperands("endswith", left, right)
	if err != nil {
		return false, err
	}
	return strings.HasSuffix(strings.ToUpper(l), strings.ToUpper(r)), nil
}

func stringOperands(op string, left, right table.Value) (string, string, error) {
	l, lok := left.AsString()
	r, rok := right.AsString()
	if !lok || !rok {
		return "", "", fmt.Errorf("%w: '%s' requires string operands, got %s and %s",
			ErrOperandType, op, left.Kind(), right.Kind())
	}
	return l, r, nil
}

// String functions

// ToUpperFunc converts a string to uppercase
type ToUpperFunc struct{}

func (f *ToUpperFunc) Name() string  { return "toupper" }
func (f *ToUpperFunc) MinArity() int { return 1 }
func (f *ToUpperFunc) MaxArity() int { return 1 }
func (f *ToUpperFunc) Evaluate(args []table.Value) (table.Value, error) {
	str, err := stringArg("toupper", args[0])
	if err != nil {
		return table.Null(), err
	}
	return table.String(strings.ToUpper(str)), nil
}

// ToLowerFunc converts a string to lowercase
type ToLowerFunc struct{}

func (f *ToLowerFunc) Name() string  { return "tolower" }
func (f *ToLowerFunc) MinArity() int { return 1 }
func (f *ToLowerFunc) MaxArity() int { return 1 }
func (f *ToLowerFunc) Evaluate(args []table.Value) (table.Value, error) {
	str, err := stringArg("tolower", args[0])
	if err != nil {
		return table.Null(), err
	}
	return table.String(strings.ToLower(str)), nil
}

// StrlenFunc returns the number of characters in a string
type StrlenFunc struct{}

func (f *StrlenFunc) Name() string  { return "strlen" }
func (f *StrlenFunc) MinArity() int { return 1 }
func (f *StrlenFunc) MaxArity() int { return 1 }
func (f *StrlenFunc) Evaluate(args []table.Value) (table.Value, error) {
	str, err := stringArg("strlen", args[0])
	if err != nil {
		return table.Null(), err
	}
	return table.Int64(int64(utf8.RuneCountInString(str))), nil
}

// stringArg accepts a string or null (treated as "").
func stringArg(fn string, v table.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("%s: %w: expected string, got %s", fn, ErrOperandType, v.Kind())
	}
	return s, nil
}
