package query

import (
	"encoding/base64"
	"fmt"

	"github.com/vegasq/kqlplay/table"
)

// Type Conversion Functions

// ToStringFunc renders any value in its natural text form; null becomes ""
type ToStringFunc struct{}

func (f *ToStringFunc) Name() string  { return "tostring" }
func (f *ToStringFunc) MinArity() int { return 1 }
func (f *ToStringFunc) MaxArity() int { return 1 }
func (f *ToStringFunc) Evaluate(args []table.Value) (table.Value, error) {
	return table.String(args[0].String()), nil
}

// Base64EncodeToStringFunc encodes the UTF-8 text of a value as standard base64
type Base64EncodeToStringFunc struct{}

func (f *Base64EncodeToStringFunc) Name() string  { return "base64_encode_tostring" }
func (f *Base64EncodeToStringFunc) MinArity() int { return 1 }
func (f *Base64EncodeToStringFunc) MaxArity() int { return 1 }
func (f *Base64EncodeToStringFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.String(""), nil
	}
	return table.String(base64.StdEncoding.EncodeToString([]byte(args[0].String()))), nil
}

// Base64DecodeToStringFunc decodes standard base64 into a UTF-8 string
type Base64DecodeToStringFunc struct{}

func (f *Base64DecodeToStringFunc) Name() string  { return "base64_decode_tostring" }
func (f *Base64DecodeToStringFunc) MinArity() int { return 1 }
func (f *Base64DecodeToStringFunc) MaxArity() int { return 1 }
func (f *Base64DecodeToStringFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.String(""), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return table.Null(), fmt.Errorf("base64_decode_tostring: %w", err)
	}
	return table.String(string(decoded)), nil
}
