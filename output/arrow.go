package output

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/vegasq/kqlplay/query"
	"github.com/vegasq/kqlplay/table"
)

// ArrowFormatter outputs rows as an Arrow IPC stream holding one record
// batch.
type ArrowFormatter struct {
	writer io.Writer
	alloc  memory.Allocator
}

// NewArrowFormatter creates a new Arrow IPC stream formatter
func NewArrowFormatter(w io.Writer) *ArrowFormatter {
	return &ArrowFormatter{writer: w, alloc: memory.DefaultAllocator}
}

// SetOutput sets the output writer
func (a *ArrowFormatter) SetOutput(w io.Writer) {
	a.writer = w
}

// Format writes the result rows. Every field is nullable. A column whose
// non-null values share one kind gets the matching Arrow type; mixed or
// all-null columns are utf8.
func (a *ArrowFormatter) Format(result *query.ExecutionResult) error {
	if err := failure(result); err != nil {
		return err
	}

	columns := result.Columns()
	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		fields[i] = arrow.Field{Name: col, Type: arrowType(columnKind(result.ResultRows, col)), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(a.alloc, schema)
	defer builder.Release()

	for _, row := range result.ResultRows {
		for i, col := range columns {
			appendValue(builder.Field(i), row.Get(col))
		}
	}

	record := builder.NewRecordBatch()
	defer record.Release()

	writer := ipc.NewWriter(a.writer, ipc.WithSchema(schema), ipc.WithAllocator(a.alloc))
	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write IPC record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close IPC writer: %w", err)
	}
	return nil
}

// columnKind returns the kind shared by every non-null value of col, or
// string when the kinds differ or no value is set.
func columnKind(rows []query.Record, col string) table.Kind {
	kind := table.KindNull
	for _, row := range rows {
		v := row.Get(col)
		if v.IsNull() {
			continue
		}
		if kind == table.KindNull {
			kind = v.Kind()
		} else if kind != v.Kind() {
			return table.KindString
		}
	}
	if kind == table.KindNull {
		return table.KindString
	}
	return kind
}

func arrowType(kind table.Kind) arrow.DataType {
	switch kind {
	case table.KindBool:
		return arrow.FixedWidthTypes.Boolean
	case table.KindInt8:
		return arrow.PrimitiveTypes.Int8
	case table.KindInt16:
		return arrow.PrimitiveTypes.Int16
	case table.KindInt32:
		return arrow.PrimitiveTypes.Int32
	case table.KindInt64:
		return arrow.PrimitiveTypes.Int64
	case table.KindUint8:
		return arrow.PrimitiveTypes.Uint8
	case table.KindUint16:
		return arrow.PrimitiveTypes.Uint16
	case table.KindUint32:
		return arrow.PrimitiveTypes.Uint32
	case table.KindUint64:
		return arrow.PrimitiveTypes.Uint64
	case table.KindFloat32:
		return arrow.PrimitiveTypes.Float32
	case table.KindFloat64:
		return arrow.PrimitiveTypes.Float64
	case table.KindDateTime, table.KindDateTimeOffset:
		return arrow.FixedWidthTypes.Timestamp_us
	case table.KindDuration:
		return arrow.FixedWidthTypes.Duration_ns
	default:
		// decimal, string, char and uuid keep their text form
		return arrow.BinaryTypes.String
	}
}

func appendValue(b array.Builder, v table.Value) {
	if v.IsNull() {
		b.AppendNull()
		return
	}
	switch b := b.(type) {
	case *array.BooleanBuilder:
		x, _ := v.AsBool()
		b.Append(x)
	case *array.Int8Builder:
		x, _ := v.AsInt64()
		b.Append(int8(x))
	case *array.Int16Builder:
		x, _ := v.AsInt64()
		b.Append(int16(x))
	case *array.Int32Builder:
		x, _ := v.AsInt64()
		b.Append(int32(x))
	case *array.Int64Builder:
		x, _ := v.AsInt64()
		b.Append(x)
	case *array.Uint8Builder:
		x, _ := v.AsFloat64()
		b.Append(uint8(x))
	case *array.Uint16Builder:
		x, _ := v.AsFloat64()
		b.Append(uint16(x))
	case *array.Uint32Builder:
		x, _ := v.AsFloat64()
		b.Append(uint32(x))
	case *array.Uint64Builder:
		x, _ := v.Interface().(uint64)
		b.Append(x)
	case *array.Float32Builder:
		x, _ := v.AsFloat64()
		b.Append(float32(x))
	case *array.Float64Builder:
		x, _ := v.AsFloat64()
		b.Append(x)
	case *array.TimestampBuilder:
		t, _ := v.AsTime()
		b.Append(arrow.Timestamp(t.UnixMicro()))
	case *array.DurationBuilder:
		d, _ := v.AsDuration()
		b.Append(arrow.Duration(d))
	case *array.StringBuilder:
		b.Append(v.String())
	default:
		b.AppendNull()
	}
}
