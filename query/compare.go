package query

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vegasq/kqlplay/table"
)

// StringComparison selects how two strings are matched for equality.
type StringComparison int

const (
	// Ordinal compares strings byte for byte.
	Ordinal StringComparison = iota
	// OrdinalIgnoreCase compares strings under Unicode case folding.
	OrdinalIgnoreCase
)

// AreEqual reports whether left and right are equal under the engine's
// cross-type rules:
//   - two nulls are equal, a null never equals a non-null
//   - numeric kinds compare as float64
//   - a number equals a string that parses to the same float64
//   - strings compare with sc
//   - anything else requires the same kind and payload
func AreEqual(left, right table.Value, sc StringComparison) bool {
	if left.IsNull() || right.IsNull() {
		return left.IsNull() && right.IsNull()
	}

	lf, lnum := left.AsFloat64()
	rf, rnum := right.AsFloat64()
	switch {
	case lnum && rnum:
		return lf == rf
	case lnum:
		if s, ok := right.AsString(); ok {
			if f, err := parseInvariantFloat(s); err == nil {
				return lf == f
			}
		}
	case rnum:
		if s, ok := left.AsString(); ok {
			if f, err := parseInvariantFloat(s); err == nil {
				return f == rf
			}
		}
	}

	ls, lstr := left.AsString()
	rs, rstr := right.AsString()
	if lstr && rstr {
		if sc == OrdinalIgnoreCase {
			return strings.EqualFold(ls, rs)
		}
		return ls == rs
	}

	return left.Equal(right)
}

// parseInvariantFloat parses s as a finite number. Infinity and NaN spellings
// are rejected.
func parseInvariantFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return f, nil
}

// Compare orders left against right, returning -1, 0 or +1.
//
// Numbers compare as float64 and strings compare case-insensitively. Values of
// the same non-numeric kind use that kind's natural order. Nulls and mixed
// kinds are errors.
func Compare(left, right table.Value) (int, error) {
	if left.IsNull() || right.IsNull() {
		return 0, fmt.Errorf("%w: %s vs %s", ErrNullComparison, left.Kind(), right.Kind())
	}

	lf, lnum := left.AsFloat64()
	rf, rnum := right.AsFloat64()
	if lnum && rnum {
		return cmp.Compare(lf, rf), nil
	}

	if left.Kind() != right.Kind() {
		return 0, fmt.Errorf("%w: %s vs %s", ErrUnsupportedComparison, left.Kind(), right.Kind())
	}

	switch left.Kind() {
	case table.KindString:
		ls, _ := left.AsString()
		rs, _ := right.AsString()
		return strings.Compare(strings.ToUpper(ls), strings.ToUpper(rs)), nil
	case table.KindBool:
		lb, _ := left.AsBool()
		rb, _ := right.AsBool()
		return cmp.Compare(boolRank(lb), boolRank(rb)), nil
	case table.KindChar:
		lc, _ := left.AsChar()
		rc, _ := right.AsChar()
		return cmp.Compare(lc, rc), nil
	case table.KindDateTime, table.KindDateTimeOffset:
		lt, _ := left.AsTime()
		rt, _ := right.AsTime()
		return lt.Compare(rt), nil
	case table.KindDuration:
		ld, _ := left.AsDuration()
		rd, _ := right.AsDuration()
		return cmp.Compare(ld, rd), nil
	case table.KindUUID:
		lu, _ := left.AsUUID()
		ru, _ := right.AsUUID()
		return bytes.Compare(lu[:], ru[:]), nil
	}

	return 0, fmt.Errorf("%w: %s vs %s", ErrUnsupportedComparison, left.Kind(), right.Kind())
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
