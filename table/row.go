package table

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is one record of a table, bound to the table's schema. Rows are built
// by Table.AddRow and are read-only afterwards.
type Row struct {
	schema *Schema
	values []Value
	set    []bool
}

func newRow(schema *Schema) *Row {
	return &Row{
		schema: schema,
		values: make([]Value, schema.Len()),
		set:    make([]bool, schema.Len()),
	}
}

// Schema returns the schema the row is bound to.
func (r *Row) Schema() *Schema { return r.schema }

// Value returns the value stored under name; absent values read as null.
func (r *Row) Value(name string) (Value, error) {
	i, ok := r.schema.position(name)
	if !ok {
		return Value{}, fmt.Errorf("%w: column '%s' does not exist", ErrUnknownColumn, name)
	}
	return r.values[i], nil
}

// Lookup reports the value stored under name and whether one was stored at
// all. An explicitly stored null is present; a never-set column is not.
func (r *Row) Lookup(name string) (Value, bool) {
	i, ok := r.schema.position(name)
	if !ok || !r.set[i] {
		return Value{}, false
	}
	return r.values[i], true
}

// Each calls fn for every column in schema order.
func (r *Row) Each(fn func(name string, v Value)) {
	for i, col := range r.schema.columns {
		fn(col.Name, r.values[i])
	}
}

// Get reads a column as the Go type T.
//
// T must match the column's declared kind (time.Time serves both datetime
// kinds; interface{} accepts any kind). A null or absent value yields the zero
// value of T without an error.
func Get[T any](r *Row, name string) (T, error) {
	var zero T
	col, ok := r.schema.Column(name)
	if !ok {
		return zero, fmt.Errorf("%w: column '%s' does not exist", ErrUnknownColumn, name)
	}
	if !assignable[T](col.Type) {
		return zero, fmt.Errorf("%w: column '%s' is of type %s, not %T", ErrTypeMismatch, name, col.Type, zero)
	}
	v, _ := r.Value(name)
	if v.IsNull() {
		return zero, nil
	}
	if _, wantValue := any(zero).(Value); wantValue {
		return any(v).(T), nil
	}
	out, ok := v.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: column '%s' holds %s", ErrTypeMismatch, name, v.Kind())
	}
	return out, nil
}

func assignable[T any](kind Kind) bool {
	var probe T
	switch any(probe).(type) {
	case bool:
		return kind == KindBool
	case int8:
		return kind == KindInt8
	case int16:
		return kind == KindInt16
	case int32:
		return kind == KindInt32 || kind == KindChar
	case int64:
		return kind == KindInt64
	case uint8:
		return kind == KindUint8
	case uint16:
		return kind == KindUint16
	case uint32:
		return kind == KindUint32
	case uint64:
		return kind == KindUint64
	case float32:
		return kind == KindFloat32
	case float64:
		return kind == KindFloat64
	case decimal.Decimal:
		return kind == KindDecimal
	case string:
		return kind == KindString
	case time.Time:
		return kind == KindDateTime || kind == KindDateTimeOffset
	case time.Duration:
		return kind == KindDuration
	case uuid.UUID:
		return kind == KindUUID
	case Value:
		return true
	}
	// interface{} and other interface types
	return any(probe) == nil
}
