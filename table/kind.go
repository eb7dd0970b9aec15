// Package table provides the typed, schema-enforcing data model: scalar kinds,
// tagged values, columns, rows and append-only tables.
//
// A Table is created with a fixed schema and only ever grows. Every appended row
// is validated against the schema before it becomes visible, and readers always
// work on a point-in-time snapshot of the row sequence.
//
// Example usage:
//
//	users, err := table.New("Users",
//	    table.NewColumn("Id", table.KindInt32, false),
//	    table.NewColumn("Name", table.KindString, true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = users.AddRow(map[string]table.Value{
//	    "Id":   table.Int32(1),
//	    "Name": table.String("alice"),
//	})
package table

import (
	"fmt"
	"strings"
)

// Kind is the type tag of a Value and the declared type of a Column.
type Kind int

const (
	// KindNull tags the null value. It is never a column type.
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal
	KindString
	KindChar
	KindDateTime
	KindDateTimeOffset
	KindDuration
	KindUUID
)

var kindNames = [...]string{
	KindNull:           "null",
	KindBool:           "bool",
	KindInt8:           "int8",
	KindInt16:          "int16",
	KindInt32:          "int32",
	KindInt64:          "int64",
	KindUint8:          "uint8",
	KindUint16:         "uint16",
	KindUint32:         "uint32",
	KindUint64:         "uint64",
	KindFloat32:        "float32",
	KindFloat64:        "float64",
	KindDecimal:        "decimal",
	KindString:         "string",
	KindChar:           "char",
	KindDateTime:       "datetime",
	KindDateTimeOffset: "datetimeoffset",
	KindDuration:       "duration",
	KindUUID:           "uuid",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k can be used as a column type.
func (k Kind) Valid() bool {
	return k > KindNull && k <= KindUUID
}

// IsNumeric reports whether values of kind k take part in numeric widening.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindDecimal:
		return true
	default:
		return false
	}
}

// typeNames maps declared type names to kinds. Lookups are case-insensitive.
var typeNames = map[string]Kind{
	"bool":           KindBool,
	"boolean":        KindBool,
	"byte":           KindUint8,
	"uint8":          KindUint8,
	"sbyte":          KindInt8,
	"int8":           KindInt8,
	"short":          KindInt16,
	"int16":          KindInt16,
	"ushort":         KindUint16,
	"uint16":         KindUint16,
	"int":            KindInt32,
	"int32":          KindInt32,
	"uint":           KindUint32,
	"uint32":         KindUint32,
	"long":           KindInt64,
	"int64":          KindInt64,
	"ulong":          KindUint64,
	"uint64":         KindUint64,
	"float":          KindFloat32,
	"float32":        KindFloat32,
	"double":         KindFloat64,
	"float64":        KindFloat64,
	"real":           KindFloat64,
	"decimal":        KindDecimal,
	"string":         KindString,
	"char":           KindChar,
	"datetime":       KindDateTime,
	"datetimeoffset": KindDateTimeOffset,
	"timespan":       KindDuration,
	"duration":       KindDuration,
	"guid":           KindUUID,
	"uuid":           KindUUID,
}

// ParseKind resolves a declared type name such as "int", "DateTime" or "guid".
func ParseKind(name string) (Kind, bool) {
	k, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// TypeNames returns every type name accepted by ParseKind.
func TypeNames() []string {
	names := make([]string, 0, len(typeNames))
	for name := range typeNames {
		names = append(names, name)
	}
	return names
}
