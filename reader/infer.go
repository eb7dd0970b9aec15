package reader

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vegasq/kqlplay/table"
)

// float64Digits is the number of significant decimal digits a float64 always
// round-trips.
const float64Digits = 15

// numericRank orders the kinds inference can produce; a wider kind holds
// every value of a narrower one.
var numericRank = map[table.Kind]int{
	table.KindInt32:   1,
	table.KindInt64:   2,
	table.KindFloat32: 3,
	table.KindFloat64: 4,
	table.KindDecimal: 5,
}

// DetectKind returns the narrowest kind that can hold s. Candidates are tried
// in order: int32, int64, float64 (decimal when s has more significant digits
// than float64 keeps), bool, datetime, uuid. Anything else, including NaN and
// infinities, is a string.
func DetectKind(s string) table.Kind {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseInt(s, 10, 32); err == nil {
		return table.KindInt32
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.KindInt64
	}
	if _, err := decimal.NewFromString(s); err == nil && significantDigits(s) > float64Digits {
		return table.KindDecimal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return table.KindFloat64
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return table.KindBool
	}
	if _, err := ParseDateTime(s); err == nil {
		return table.KindDateTime
	}
	if _, err := uuid.Parse(s); err == nil {
		return table.KindUUID
	}
	return table.KindString
}

// significantDigits counts the mantissa digits of a decimal literal, ignoring
// sign, leading zeros and any exponent.
func significantDigits(s string) int {
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimLeft(s, "+-")
	s = strings.Replace(s, ".", "", 1)
	s = strings.TrimLeft(s, "0")
	return len(s)
}

// WiderKind returns the kind able to hold values of both a and b. Numeric
// kinds widen to the higher rank, except that int64 mixed with a float kind
// becomes decimal: float64 cannot hold every int64 exactly. Any other mix
// becomes string.
func WiderKind(a, b table.Kind) table.Kind {
	if a == b {
		return a
	}
	ra, aok := numericRank[a]
	rb, bok := numericRank[b]
	if !aok || !bok {
		return table.KindString
	}
	if (a == table.KindInt64 && isFloatKind(b)) || (b == table.KindInt64 && isFloatKind(a)) {
		return table.KindDecimal
	}
	if ra > rb {
		return a
	}
	return b
}

func isFloatKind(k table.Kind) bool {
	return k == table.KindFloat32 || k == table.KindFloat64
}

// InferColumn derives a column from the raw text of every row. Empty values
// make the column nullable; a column with no values at all is a nullable
// string.
func InferColumn(name string, values []string) table.Column {
	nullable := false
	kind := table.KindNull
	for _, v := range values {
		if v == "" {
			nullable = true
			continue
		}
		detected := DetectKind(v)
		if kind == table.KindNull {
			kind = detected
			continue
		}
		if kind != table.KindString {
			kind = WiderKind(kind, detected)
		}
	}
	if kind == table.KindNull {
		kind = table.KindString
	}
	return table.NewColumn(name, kind, nullable)
}
