package reader

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vegasq/kqlplay/table"
)

// dateTimeLayouts are tried in order when parsing datetime text. Layouts
// without a zone are read as UTC; fractional seconds are accepted after any
// seconds field.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 03:04:05 PM",
	"01/02/2006 03:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDateTime parses text in any of the supported date and time layouts.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time %q", s)
}

// ParseValue parses raw text as a value of kind. Empty text is null; the
// column decides whether null is allowed.
func ParseValue(raw string, kind table.Kind) (table.Value, error) {
	if raw == "" {
		return table.Null(), nil
	}
	s := raw
	if kind != table.KindString && kind != table.KindChar {
		s = strings.TrimSpace(raw)
	}

	v, err := parseText(s, kind)
	if err != nil {
		return table.Null(), fmt.Errorf("%w: cannot parse %q as %s: %v", table.ErrTypeMismatch, raw, kind, err)
	}
	return v, nil
}

func parseText(s string, kind table.Kind) (table.Value, error) {
	switch kind {
	case table.KindString:
		return table.String(s), nil
	case table.KindBool:
		switch strings.ToLower(s) {
		case "true":
			return table.Bool(true), nil
		case "false":
			return table.Bool(false), nil
		}
		return table.Null(), fmt.Errorf("not a boolean")
	case table.KindInt8:
		n, err := strconv.ParseInt(s, 10, 8)
		return table.Int8(int8(n)), err
	case table.KindInt16:
		n, err := strconv.ParseInt(s, 10, 16)
		return table.Int16(int16(n)), err
	case table.KindInt32:
		n, err := strconv.ParseInt(s, 10, 32)
		return table.Int32(int32(n)), err
	case table.KindInt64:
		n, err := strconv.ParseInt(s, 10, 64)
		return table.Int64(n), err
	case table.KindUint8:
		n, err := strconv.ParseUint(s, 10, 8)
		return table.Uint8(uint8(n)), err
	case table.KindUint16:
		n, err := strconv.ParseUint(s, 10, 16)
		return table.Uint16(uint16(n)), err
	case table.KindUint32:
		n, err := strconv.ParseUint(s, 10, 32)
		return table.Uint32(uint32(n)), err
	case table.KindUint64:
		n, err := strconv.ParseUint(s, 10, 64)
		return table.Uint64(n), err
	case table.KindFloat32:
		f, err := strconv.ParseFloat(s, 32)
		return table.Float32(float32(f)), err
	case table.KindFloat64:
		f, err := strconv.ParseFloat(s, 64)
		return table.Float64(f), err
	case table.KindDecimal:
		d, err := decimal.NewFromString(s)
		return table.Decimal(d), err
	case table.KindChar:
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) {
			return table.Null(), fmt.Errorf("not a single character")
		}
		return table.Char(r), nil
	case table.KindDateTime:
		t, err := ParseDateTime(s)
		return table.DateTime(t), err
	case table.KindDateTimeOffset:
		t, err := ParseDateTime(s)
		return table.DateTimeOffset(t), err
	case table.KindDuration:
		d, err := table.ParseDuration(s)
		return table.Duration(d), err
	case table.KindUUID:
		id, err := uuid.Parse(s)
		return table.UUID(id), err
	default:
		return table.Null(), fmt.Errorf("unsupported kind %s", kind)
	}
}
