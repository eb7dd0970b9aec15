package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value is a tagged scalar. Only the payload field matching the kind is set;
// the zero Value is null.
type Value struct {
	kind Kind
	i    int64 // signed integers, bool (0/1), char
	u    uint64
	f    float64 // float32 values are stored widened
	s    string
	t    time.Time
	dur  time.Duration
	dec  decimal.Decimal
	id   uuid.UUID
}

// Null returns the null value.
func Null() Value { return Value{} }

func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.i = 1
	}
	return v
}

func Int8(n int8) Value     { return Value{kind: KindInt8, i: int64(n)} }
func Int16(n int16) Value   { return Value{kind: KindInt16, i: int64(n)} }
func Int32(n int32) Value   { return Value{kind: KindInt32, i: int64(n)} }
func Int64(n int64) Value   { return Value{kind: KindInt64, i: n} }
func Uint8(n uint8) Value   { return Value{kind: KindUint8, u: uint64(n)} }
func Uint16(n uint16) Value { return Value{kind: KindUint16, u: uint64(n)} }
func Uint32(n uint32) Value { return Value{kind: KindUint32, u: uint64(n)} }
func Uint64(n uint64) Value { return Value{kind: KindUint64, u: n} }

func Float32(f float32) Value { return Value{kind: KindFloat32, f: float64(f)} }
func Float64(f float64) Value { return Value{kind: KindFloat64, f: f} }

func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }
func String(s string) Value           { return Value{kind: KindString, s: s} }
func Char(r rune) Value               { return Value{kind: KindChar, i: int64(r)} }

// DateTime wraps a calendar date and time.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// DateTimeOffset wraps a date and time that carries its UTC offset.
func DateTimeOffset(t time.Time) Value { return Value{kind: KindDateTimeOffset, t: t} }

func Duration(d time.Duration) Value { return Value{kind: KindDuration, dur: d} }
func UUID(id uuid.UUID) Value        { return Value{kind: KindUUID, id: id} }

// ValueOf converts a Go-native value into a Value.
//
// int and uint map to the 64-bit kinds, time.Time to KindDateTime and []byte to
// KindString.
func ValueOf(x interface{}) (Value, error) {
	switch val := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int64(int64(val)), nil
	case int8:
		return Int8(val), nil
	case int16:
		return Int16(val), nil
	case int32:
		return Int32(val), nil
	case int64:
		return Int64(val), nil
	case uint:
		return Uint64(uint64(val)), nil
	case uint8:
		return Uint8(val), nil
	case uint16:
		return Uint16(val), nil
	case uint32:
		return Uint32(val), nil
	case uint64:
		return Uint64(val), nil
	case float32:
		return Float32(val), nil
	case float64:
		return Float64(val), nil
	case decimal.Decimal:
		return Decimal(val), nil
	case string:
		return String(val), nil
	case []byte:
		return String(string(val)), nil
	case time.Time:
		return DateTime(val), nil
	case time.Duration:
		return Duration(val), nil
	case uuid.UUID:
		return UUID(val), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported Go type %T", ErrTypeMismatch, x)
	}
}

// Kind returns the type tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the Go-native form of v, or nil for null.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.i != 0
	case KindInt8:
		return int8(v.i)
	case KindInt16:
		return int16(v.i)
	case KindInt32:
		return int32(v.i)
	case KindInt64:
		return v.i
	case KindUint8:
		return uint8(v.u)
	case KindUint16:
		return uint16(v.u)
	case KindUint32:
		return uint32(v.u)
	case KindUint64:
		return v.u
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindDecimal:
		return v.dec
	case KindString:
		return v.s
	case KindChar:
		return rune(v.i)
	case KindDateTime, KindDateTimeOffset:
		return v.t
	case KindDuration:
		return v.dur
	case KindUUID:
		return v.id
	default:
		return nil
	}
}

// AsBool returns the payload of a bool value.
func (v Value) AsBool() (bool, bool) {
	return v.i != 0, v.kind == KindBool
}

// AsString returns the payload of a string value.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsInt64 returns the payload of a signed integer value.
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i, true
	}
	return 0, false
}

// AsFloat64 widens any numeric value to float64.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return float64(v.i), true
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return float64(v.u), true
	case KindFloat32, KindFloat64:
		return v.f, true
	case KindDecimal:
		return v.dec.InexactFloat64(), true
	}
	return 0, false
}

// AsTime returns the payload of a datetime or datetimeoffset value.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindDateTime || v.kind == KindDateTimeOffset
}

// AsDuration returns the payload of a duration value.
func (v Value) AsDuration() (time.Duration, bool) {
	return v.dur, v.kind == KindDuration
}

// AsUUID returns the payload of a uuid value.
func (v Value) AsUUID() (uuid.UUID, bool) {
	return v.id, v.kind == KindUUID
}

// AsChar returns the payload of a char value.
func (v Value) AsChar() (rune, bool) {
	return rune(v.i), v.kind == KindChar
}

// AsDecimal returns the payload of a decimal value.
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	return v.dec, v.kind == KindDecimal
}

// Equal reports structural equality: same kind and same payload.
// Times are compared as instants.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u == o.u
	case KindFloat32, KindFloat64:
		return v.f == o.f
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindString:
		return v.s == o.s
	case KindDateTime, KindDateTimeOffset:
		return v.t.Equal(o.t)
	case KindDuration:
		return v.dur == o.dur
	case KindUUID:
		return v.id == o.id
	default:
		return v.i == o.i
	}
}

// String renders v in its natural text form. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return v.dec.String()
	case KindString:
		return v.s
	case KindChar:
		return string(rune(v.i))
	case KindDateTime, KindDateTimeOffset:
		return v.t.Format(time.RFC3339Nano)
	case KindDuration:
		return FormatDuration(v.dur)
	case KindUUID:
		return v.id.String()
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// MarshalJSON writes numbers as JSON numbers, bools as JSON booleans and
// everything else as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindDecimal:
		return []byte(v.String()), nil
	case KindFloat32, KindFloat64:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return json.Marshal(v.String())
		}
		return []byte(v.String()), nil
	case KindDateTime, KindDateTimeOffset:
		return json.Marshal(v.t)
	default:
		return json.Marshal(v.String())
	}
}

// UnmarshalJSON decodes a JSON scalar: integers become int64, other numbers
// float64, strings string and booleans bool.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	decoded, err := FromJSON(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// FromJSON converts a value produced by encoding/json (with or without
// UseNumber) into a Value.
func FromJSON(raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return Int64(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid JSON number %q: %w", val.String(), err)
		}
		return Float64(f), nil
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return Int64(int64(val)), nil
		}
		return Float64(val), nil
	case map[string]interface{}, []interface{}:
		return Value{}, fmt.Errorf("%w: nested JSON values are not scalars", ErrTypeMismatch)
	default:
		return ValueOf(val)
	}
}
