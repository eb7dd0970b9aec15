package query

import (
	"errors"
	"testing"
	"time"

	"github.com/vegasq/kqlplay/table"
)

func TestBase64Funcs(t *testing.T) {
	encode := &Base64EncodeToStringFunc{}
	decode := &Base64DecodeToStringFunc{}

	tests := []struct {
		name string
		arg  table.Value
		want string
	}{
		{"string", table.String("Kusto1"), "S3VzdG8x"},
		{"empty", table.String(""), ""},
		{"null", table.Null(), ""},
		{"number", table.Int32(42), "NDI="},
		{"bool", table.Bool(true), "dHJ1ZQ=="},
		{"unicode", table.String("héllo"), "aMOpbGxv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encode.Evaluate([]table.Value{tt.arg})
			if err != nil {
				t.Fatalf("encode error = %v", err)
			}
			if s, _ := got.AsString(); s != tt.want {
				t.Errorf("encode(%v) = %q, want %q", tt.arg, s, tt.want)
			}

			back, err := decode.Evaluate([]table.Value{got})
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if s, _ := back.AsString(); s != tt.arg.String() {
				t.Errorf("decode(encode(%v)) = %q", tt.arg, s)
			}
		})
	}

	t.Run("decode null", func(t *testing.T) {
		got, err := decode.Evaluate([]table.Value{table.Null()})
		if err != nil || !got.Equal(table.String("")) {
			t.Errorf("decode(null) = %v, %v", got, err)
		}
	})
	t.Run("decode invalid", func(t *testing.T) {
		if _, err := decode.Evaluate([]table.Value{table.String("not base64!")}); err == nil {
			t.Error("expected error for invalid base64")
		}
	})
}

func TestToStringFunc(t *testing.T) {
	fn := &ToStringFunc{}
	tests := []struct {
		arg  table.Value
		want string
	}{
		{table.Null(), ""},
		{table.Int64(-5), "-5"},
		{table.Float64(2.5), "2.5"},
		{table.Duration(90 * time.Minute), "01:30:00"},
		{table.Char('x'), "x"},
	}
	for _, tt := range tests {
		got, err := fn.Evaluate([]table.Value{tt.arg})
		if err != nil {
			t.Fatalf("tostring(%v) error = %v", tt.arg, err)
		}
		if s, _ := got.AsString(); s != tt.want {
			t.Errorf("tostring(%v) = %q, want %q", tt.arg, s, tt.want)
		}
	}
}

func TestFunctionRegistry(t *testing.T) {
	r := DefaultFunctions()

	for _, name := range []string{"base64_encode_tostring", "BASE64_Decode_ToString", "ToUpper", "strlen", "tostring"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("Get(%q) not found", name)
		}
	}

	if _, err := r.Call("nope", nil); !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("Call(nope) error = %v, want ErrUnknownFunction", err)
	}
	if _, err := r.Call("strlen", nil); !errors.Is(err, ErrArgumentCount) {
		t.Errorf("Call(strlen) with no args error = %v, want ErrArgumentCount", err)
	}
	args := []table.Value{table.String("a"), table.String("b")}
	if _, err := r.Call("base64_encode_tostring", args); !errors.Is(err, ErrArgumentCount) {
		t.Errorf("Call with two args error = %v, want ErrArgumentCount", err)
	}

	got, err := r.Call("TOUPPER", []table.Value{table.String("abc")})
	if err != nil || !got.Equal(table.String("ABC")) {
		t.Errorf("Call(TOUPPER) = %v, %v", got, err)
	}
}

type constFunc struct {
	name string
	v    table.Value
}

func (f *constFunc) Name() string                                  { return f.name }
func (f *constFunc) MinArity() int                                 { return 0 }
func (f *constFunc) MaxArity() int                                 { return -1 }
func (f *constFunc) Evaluate(args []table.Value) (table.Value, error) { return f.v, nil }

func TestFunctionRegistry_Replace(t *testing.T) {
	r := DefaultFunctions()
	r.Register(&constFunc{name: "StrLen", v: table.Int64(-1)})

	got, err := r.Call("strlen", []table.Value{table.String("abc"), table.Null(), table.Null()})
	if err != nil || !got.Equal(table.Int64(-1)) {
		t.Errorf("replaced strlen = %v, %v; want -1", got, err)
	}

	names := r.Names()
	count := 0
	for _, n := range names {
		if n == "strlen" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Names() = %v, want strlen exactly once", names)
	}
}
