package query

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vegasq/kqlplay/table"
)

func TestRecord_MarshalJSON(t *testing.T) {
	rec := testRecord(t,
		"Zeta", int32(1),
		"Alpha", "text",
		"Ok", true,
		"Nothing", nil,
		"Price", decimal.RequireFromString("12.50"),
		"When", time.Date(2025, 8, 23, 6, 20, 0, 0, time.UTC),
		"Took", 90*time.Second,
		"Id", uuid.MustParse("3f2504e0-4f89-11d3-9a0c-0305e82c3301"),
		"Ratio", 0.25,
	)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"Zeta":1,"Alpha":"text","Ok":true,"Nothing":null,"Price":12.5,` +
		`"When":"2025-08-23T06:20:00Z","Took":"00:01:30",` +
		`"Id":"3f2504e0-4f89-11d3-9a0c-0305e82c3301","Ratio":0.25}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestRecord_UnmarshalJSONKeepsOrder(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"b":1,"a":2.5,"c":"x","d":null,"e":false}`), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if keys := rec.Keys(); !reflect.DeepEqual(keys, []string{"b", "a", "c", "d", "e"}) {
		t.Errorf("Keys() = %v", keys)
	}
	checks := map[string]table.Value{
		"b": table.Int64(1),
		"a": table.Float64(2.5),
		"c": table.String("x"),
		"d": table.Null(),
		"e": table.Bool(false),
	}
	for k, want := range checks {
		if got := rec.Get(k); !got.Equal(want) {
			t.Errorf("%s = %v (%s), want %v (%s)", k, got, got.Kind(), want, want.Kind())
		}
	}

	if err := json.Unmarshal([]byte(`{"nested":{"x":1}}`), &rec); err == nil {
		t.Error("expected error for nested object")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &rec); err == nil {
		t.Error("expected error for array")
	}
}

func TestExecutionResult_JSON(t *testing.T) {
	tests := []struct {
		name   string
		result *ExecutionResult
		want   string
	}{
		{
			name:   "rows",
			result: rowsResult([]Record{testRecord(t, "State", "FLORIDA", "DamageProperty", int32(20000))}),
			want:   `{"ResultRows":[{"State":"FLORIDA","DamageProperty":20000}],"ExecutionErrors":null}`,
		},
		{
			name:   "empty rows",
			result: rowsResult(nil),
			want:   `{"ResultRows":[],"ExecutionErrors":null}`,
		},
		{
			name:   "error",
			result: errorResult(CodeUnknownTable, "unknown table: Nope"),
			want:   `{"ResultRows":null,"ExecutionErrors":[{"Code":"UnknownTable","Description":"unknown table: Nope"}]}`,
		},
		{
			name:   "error without description",
			result: errorResult(CodeInternalError, ""),
			want:   `{"ResultRows":null,"ExecutionErrors":[{"Code":"InternalError"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}

			var back ExecutionResult
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			again, err := json.Marshal(&back)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(again) != tt.want {
				t.Errorf("round trip = %s, want %s", again, tt.want)
			}
		})
	}
}

func TestExecutionResult_Columns(t *testing.T) {
	result := rowsResult([]Record{
		testRecord(t, "a", 1, "b", 2),
		testRecord(t, "b", 3, "c", 4),
	})
	if cols := result.Columns(); !reflect.DeepEqual(cols, []string{"a", "b", "c"}) {
		t.Errorf("Columns() = %v", cols)
	}
}
