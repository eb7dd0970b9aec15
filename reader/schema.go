package reader

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
	"github.com/vegasq/kqlplay/table"
)

// parquetColumn pairs a table column with the conversion of the values the
// parquet reader yields for it.
type parquetColumn struct {
	column  table.Column
	convert func(interface{}) (table.Value, error)
}

// parquetColumns maps the leaf fields of a flat parquet schema to columns.
func parquetColumns(schema *parquet.Schema) ([]parquetColumn, error) {
	fields := schema.Fields()
	cols := make([]parquetColumn, 0, len(fields))
	for _, field := range fields {
		if len(field.Fields()) > 0 {
			return nil, fmt.Errorf("%w: nested column '%s' is not supported", ErrValidation, field.Name())
		}
		if field.Repeated() {
			return nil, fmt.Errorf("%w: repeated column '%s' is not supported", ErrValidation, field.Name())
		}
		kind, convert := fieldConversion(field)
		cols = append(cols, parquetColumn{
			column:  table.NewColumn(field.Name(), kind, field.Optional()),
			convert: nullable(convert),
		})
	}
	return cols, nil
}

func nullable(convert func(interface{}) (table.Value, error)) func(interface{}) (table.Value, error) {
	return func(x interface{}) (table.Value, error) {
		if x == nil {
			return table.Null(), nil
		}
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return table.Null(), nil
			}
			x = rv.Elem().Interface()
		}
		return convert(x)
	}
}

// fieldConversion picks the column kind of a leaf field. The logical type is
// checked first for more specific typing, then the physical type.
func fieldConversion(field parquet.Field) (table.Kind, func(interface{}) (table.Value, error)) {
	typ := field.Type()

	if lt := typ.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil:
			return table.KindString, toStringValue
		case lt.UUID != nil:
			return table.KindUUID, toUUIDValue
		case lt.Decimal != nil:
			scale := lt.Decimal.Scale
			return table.KindDecimal, func(x interface{}) (table.Value, error) {
				return toDecimalValue(x, scale)
			}
		case lt.Timestamp != nil:
			unit := timeUnitOf(lt.Timestamp.Unit.Millis != nil, lt.Timestamp.Unit.Micros != nil)
			return table.KindDateTime, func(x interface{}) (table.Value, error) {
				return toTimestampValue(x, unit)
			}
		case lt.Date != nil:
			return table.KindDateTime, toDateValue
		case lt.Time != nil:
			unit := timeUnitOf(lt.Time.Unit.Millis != nil, lt.Time.Unit.Micros != nil)
			return table.KindDuration, func(x interface{}) (table.Value, error) {
				n, ok := toInt64(x)
				if !ok {
					return unexpected(x, table.KindDuration)
				}
				return table.Duration(time.Duration(n) * unit), nil
			}
		case lt.Integer != nil:
			return integerConversion(int(lt.Integer.BitWidth), lt.Integer.IsSigned)
		}
	}

	switch typ.Kind() {
	case parquet.Boolean:
		return table.KindBool, func(x interface{}) (table.Value, error) {
			b, ok := x.(bool)
			if !ok {
				return unexpected(x, table.KindBool)
			}
			return table.Bool(b), nil
		}
	case parquet.Int32:
		return integerConversion(32, true)
	case parquet.Int64:
		return integerConversion(64, true)
	case parquet.Float:
		return table.KindFloat32, func(x interface{}) (table.Value, error) {
			switch f := x.(type) {
			case float32:
				return table.Float32(f), nil
			case float64:
				return table.Float32(float32(f)), nil
			}
			return unexpected(x, table.KindFloat32)
		}
	case parquet.Double:
		return table.KindFloat64, func(x interface{}) (table.Value, error) {
			switch f := x.(type) {
			case float64:
				return table.Float64(f), nil
			case float32:
				return table.Float64(float64(f)), nil
			}
			return unexpected(x, table.KindFloat64)
		}
	default:
		// BYTE_ARRAY, FIXED_LEN_BYTE_ARRAY and INT96
		return table.KindString, toStringValue
	}
}

func integerConversion(bits int, signed bool) (table.Kind, func(interface{}) (table.Value, error)) {
	var kind table.Kind
	switch {
	case signed && bits == 8:
		kind = table.KindInt8
	case signed && bits == 16:
		kind = table.KindInt16
	case signed && bits == 32:
		kind = table.KindInt32
	case signed:
		kind = table.KindInt64
	case bits == 8:
		kind = table.KindUint8
	case bits == 16:
		kind = table.KindUint16
	case bits == 32:
		kind = table.KindUint32
	default:
		kind = table.KindUint64
	}

	return kind, func(x interface{}) (table.Value, error) {
		n, ok := toInt64(x)
		if !ok {
			return unexpected(x, kind)
		}
		switch kind {
		case table.KindInt8:
			return table.Int8(int8(n)), nil
		case table.KindInt16:
			return table.Int16(int16(n)), nil
		case table.KindInt32:
			return table.Int32(int32(n)), nil
		case table.KindInt64:
			return table.Int64(n), nil
		case table.KindUint8:
			return table.Uint8(uint8(n)), nil
		case table.KindUint16:
			return table.Uint16(uint16(n)), nil
		case table.KindUint32:
			return table.Uint32(uint32(n)), nil
		default:
			return table.Uint64(uint64(n)), nil
		}
	}
}

// toInt64 accepts every Go integer type; unsigned 64-bit values keep their
// bit pattern.
func toInt64(x interface{}) (int64, bool) {
	switch n := x.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func timeUnitOf(millis, micros bool) time.Duration {
	switch {
	case millis:
		return time.Millisecond
	case micros:
		return time.Microsecond
	default:
		return time.Nanosecond
	}
}

func toStringValue(x interface{}) (table.Value, error) {
	switch s := x.(type) {
	case string:
		return table.String(s), nil
	case []byte:
		return table.String(string(s)), nil
	case fmt.Stringer:
		return table.String(s.String()), nil
	default:
		return table.String(fmt.Sprint(x)), nil
	}
}

func toUUIDValue(x interface{}) (table.Value, error) {
	switch id := x.(type) {
	case uuid.UUID:
		return table.UUID(id), nil
	case [16]byte:
		return table.UUID(uuid.UUID(id)), nil
	case []byte:
		parsed, err := uuid.FromBytes(id)
		if err != nil {
			return table.Null(), fmt.Errorf("%w: %v", table.ErrTypeMismatch, err)
		}
		return table.UUID(parsed), nil
	case string:
		if len(id) == 16 {
			return table.UUID(uuid.UUID([]byte(id))), nil
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return table.Null(), fmt.Errorf("%w: %v", table.ErrTypeMismatch, err)
		}
		return table.UUID(parsed), nil
	}
	return unexpected(x, table.KindUUID)
}

// toDecimalValue decodes a DECIMAL value stored as an unscaled integer or as
// big-endian two's complement bytes.
func toDecimalValue(x interface{}, scale int32) (table.Value, error) {
	if n, ok := toInt64(x); ok {
		return table.Decimal(decimal.New(n, -scale)), nil
	}
	var raw []byte
	switch b := x.(type) {
	case decimal.Decimal:
		return table.Decimal(b), nil
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		return unexpected(x, table.KindDecimal)
	}
	unscaled := new(big.Int).SetBytes(raw)
	if len(raw) > 0 && raw[0]&0x80 != 0 {
		unscaled.Sub(unscaled, new(big.Int).Lsh(big.NewInt(1), uint(len(raw))*8))
	}
	return table.Decimal(decimal.NewFromBigInt(unscaled, -scale)), nil
}

func toTimestampValue(x interface{}, unit time.Duration) (table.Value, error) {
	if t, ok := x.(time.Time); ok {
		return table.DateTime(t.UTC()), nil
	}
	n, ok := toInt64(x)
	if !ok {
		return unexpected(x, table.KindDateTime)
	}
	switch unit {
	case time.Millisecond:
		return table.DateTime(time.UnixMilli(n).UTC()), nil
	case time.Microsecond:
		return table.DateTime(time.UnixMicro(n).UTC()), nil
	default:
		return table.DateTime(time.Unix(0, n).UTC()), nil
	}
}

func toDateValue(x interface{}) (table.Value, error) {
	if t, ok := x.(time.Time); ok {
		return table.DateTime(t.UTC()), nil
	}
	days, ok := toInt64(x)
	if !ok {
		return unexpected(x, table.KindDateTime)
	}
	return table.DateTime(time.Unix(days*24*60*60, 0).UTC()), nil
}

func unexpected(x interface{}, kind table.Kind) (table.Value, error) {
	return table.Null(), fmt.Errorf("%w: parquet value %T for %s column", table.ErrTypeMismatch, x, kind)
}
