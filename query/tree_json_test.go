package query

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeQuery(t *testing.T) {
	input := `{
	  "kind": "pipe",
	  "source": {
	    "kind": "pipe",
	    "source": {"kind": "table", "name": "StormEvents"},
	    "operator": {
	      "kind": "where",
	      "condition": {
	        "kind": "binary", "op": "and",
	        "left": {"kind": "binary", "op": "==",
	                 "left": {"kind": "name", "name": "State"},
	                 "right": {"kind": "literal", "type": "string", "text": "\"FLORIDA\""}},
	        "right": {"kind": "binary", "op": ">",
	                  "left": {"kind": "name", "name": "DamageProperty"},
	                  "right": {"kind": "literal", "type": "int", "text": 10000}}
	      }
	    }
	  },
	  "operator": {
	    "kind": "extend",
	    "items": [
	      {"kind": "named", "name": "Neg", "expr": {"kind": "unary", "op": "-", "operand": {"kind": "literal", "type": "long", "text": "5"}}},
	      {"kind": "call", "name": "base64_encode_tostring", "args": [{"kind": "name", "name": "State"}]}
	    ]
	  }
	}`

	got, err := DecodeQuery(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeQuery() error = %v", err)
	}

	want := Pipeline(From("StormEvents"),
		Where(Bin(OpAnd,
			Bin(OpEqual, Col("State"), Str("FLORIDA")),
			Bin(OpGreater, Col("DamageProperty"), Int(10000)))),
		ExtendOf(
			As("Neg", &Unary{Op: OpMinus, Operand: Long(5)}),
			Fn("base64_encode_tostring", Col("State")),
		),
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeQuery() = %#v, want %#v", got, want)
	}
}

func TestDecodeQuery_ProjectAndTake(t *testing.T) {
	input := `{"kind":"pipe",
	  "source":{"kind":"pipe","source":{"kind":"table","name":"T"},
	    "operator":{"kind":"project","items":[{"kind":"name","name":"a"},{"kind":"named","name":"b","expr":{"kind":"name","name":"c"}}]}},
	  "operator":{"kind":"take","count":{"kind":"literal","type":"int","text":"3"}}}`

	got, err := ParseQueryTree([]byte(input))
	if err != nil {
		t.Fatalf("ParseQueryTree() error = %v", err)
	}
	want := Pipeline(From("T"), ProjectOf(Col("a"), As("b", Col("c"))), TakeN(3))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseQueryTree() = %#v, want %#v", got, want)
	}
}

func TestDecodeQuery_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown source", `{"kind":"join"}`, ErrUnsupportedExpression},
		{"operator as root", `{"kind":"take","count":{"kind":"literal","type":"int","text":"1"}}`, ErrUnsupportedExpression},
		{"unknown operator", `{"kind":"pipe","source":{"kind":"table","name":"T"},"operator":{"kind":"sort"}}`, ErrUnsupportedExpression},
		{"missing operator", `{"kind":"pipe","source":{"kind":"table","name":"T"}}`, ErrUnsupportedExpression},
		{"unknown binary op", `{"kind":"pipe","source":{"kind":"table","name":"T"},"operator":{"kind":"where","condition":{"kind":"binary","op":"has","left":{"kind":"name","name":"a"},"right":{"kind":"name","name":"b"}}}}`, ErrUnsupportedExpression},
		{"unknown literal type", `{"kind":"pipe","source":{"kind":"table","name":"T"},"operator":{"kind":"take","count":{"kind":"literal","type":"timespan","text":"1d"}}}`, ErrUnsupportedExpression},
		{"unknown expression", `{"kind":"pipe","source":{"kind":"table","name":"T"},"operator":{"kind":"where","condition":{"kind":"lambda"}}}`, ErrUnsupportedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQueryTree([]byte(tt.input)); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseQueryTree() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := DecodeQuery(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseQueryTree_Limits(t *testing.T) {
	deep := `{"kind": "name", "name": "x"}`
	for i := 0; i < MaxExpressionDepth+1; i++ {
		deep = `{"kind": "unary", "op": "-", "operand": ` + deep + `}`
	}
	deep = `{"kind": "pipe", "source": {"kind": "table", "name": "T"},
	  "operator": {"kind": "where", "condition": ` + deep + `}}`

	longName := `{"kind": "table", "name": "` + strings.Repeat("a", MaxNameLength+1) + `"}`
	huge := []byte(`{"kind": "table", "name": "T"}` + strings.Repeat(" ", MaxQueryLength))

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"too deep", []byte(deep), ErrExpressionTooDeep},
		{"long name", []byte(longName), ErrNameTooLong},
		{"too long", huge, ErrQueryTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQueryTree(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseQueryTree() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
