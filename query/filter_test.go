package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vegasq/kqlplay/table"
)

func stormRecords(t *testing.T) []Record {
	t.Helper()
	return []Record{
		testRecord(t, "State", "FLORIDA", "DamageProperty", int32(20000), "EventType", "Hail"),
		testRecord(t, "State", "TEXAS", "DamageProperty", int32(5000), "EventType", "Flood"),
		testRecord(t, "State", "FLORIDA", "DamageProperty", int32(100), "EventType", "Thunderstorm Wind"),
	}
}

func TestApplyFilter(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)

	got, err := e.ApplyFilter(rows, Bin(OpEqual, Col("State"), Str("FLORIDA")))
	if err != nil {
		t.Fatalf("ApplyFilter() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if v := got[1].Get("DamageProperty"); !v.Equal(table.Int32(100)) {
		t.Errorf("filter reordered rows: second DamageProperty = %v", v)
	}

	if _, err := e.ApplyFilter(rows, Bin(OpGreater, Col("State"), Int(1))); !errors.Is(err, ErrUnsupportedComparison) {
		t.Errorf("ApplyFilter() error = %v, want ErrUnsupportedComparison", err)
	}
}

func TestApplyProject(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)

	got, err := e.ApplyProject(rows, []Expr{Col("EventType"), As("Where", Col("State")), Col("Missing")})
	if err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	if keys := got[0].Keys(); !reflect.DeepEqual(keys, []string{"EventType", "Where", "Missing"}) {
		t.Errorf("Keys() = %v", keys)
	}
	if v := got[0].Get("Where"); !v.Equal(table.String("FLORIDA")) {
		t.Errorf("Where = %v, want FLORIDA", v)
	}
	if v, ok := got[0].Lookup("Missing"); !ok || !v.IsNull() {
		t.Errorf("Missing = %v, %v; want present null", v, ok)
	}
	if _, ok := got[0].Lookup("DamageProperty"); ok {
		t.Error("unprojected column survived")
	}
}

func TestApplyProject_Unsupported(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)

	tests := []struct {
		name string
		item Expr
	}{
		{"literal", Int(1)},
		{"call", Fn("toupper", Col("State"))},
		{"alias of call", As("x", Fn("toupper", Col("State")))},
		{"binary", Bin(OpEqual, Col("State"), Str("x"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.ApplyProject(rows, []Expr{tt.item}); !errors.Is(err, ErrUnsupportedProjection) {
				t.Errorf("ApplyProject() error = %v, want ErrUnsupportedProjection", err)
			}
		})
	}
}

func TestApplyTake(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)

	tests := []struct {
		name  string
		rows  []Record
		count Expr
		want  int
	}{
		{"fewer than available", rows, Int(2), 2},
		{"more than available", rows, Int(10), 3},
		{"long literal", rows, Long(1), 1},
		{"zero", rows, Int(0), 0},
		{"negative", rows, &Literal{Kind: LiteralInt, Text: "-1"}, 0},
		{"empty input", []Record{}, Int(10), 0},
		{"nil input", nil, Int(10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ApplyTake(tt.rows, tt.count)
			if err != nil {
				t.Fatalf("ApplyTake() error = %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("ApplyTake() returned %d rows, want %d", len(got), tt.want)
			}
			for i := range got {
				if !reflect.DeepEqual(got[i], tt.rows[i]) {
					t.Errorf("row %d changed order", i)
				}
			}
		})
	}
}

func TestApplyTake_Unsupported(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)

	for _, count := range []Expr{Col("n"), Real(1.5), Str("3"), Fn("strlen", Str("abc")), &Unary{Op: OpMinus, Operand: Int(1)}} {
		if _, err := e.ApplyTake(rows, count); !errors.Is(err, ErrUnsupportedTakeArgument) {
			t.Errorf("ApplyTake(%s) error = %v, want ErrUnsupportedTakeArgument", nodeKind(count), err)
		}
	}
}

func TestApplyExtend(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)[:1]

	got, err := e.ApplyExtend(rows, []Expr{
		As("Encoded", Fn("base64_encode_tostring", Col("State"))),
		As("Decoded", Fn("base64_decode_tostring", Col("Encoded"))),
		As("State", Fn("tolower", Col("State"))),
		As("Big", Bin(OpGreater, Col("DamageProperty"), Int(10000))),
		Col("Absent"),
		Fn("tostring", Col("DamageProperty")),
	})
	if err != nil {
		t.Fatalf("ApplyExtend() error = %v", err)
	}

	want := []struct {
		key  string
		want table.Value
	}{
		{"State", table.String("florida")},
		{"DamageProperty", table.Int32(20000)},
		{"EventType", table.String("Hail")},
		{"Encoded", table.String("RkxPUklEQQ==")},
		{"Decoded", table.String("FLORIDA")},
		{"Big", table.Bool(true)},
		{"Absent", table.Null()},
		{"tostring", table.String("20000")},
	}
	keys := got[0].Keys()
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v", keys)
	}
	for i, w := range want {
		if keys[i] != w.key {
			t.Errorf("key %d = %s, want %s", i, keys[i], w.key)
		}
		if v := got[0].Get(w.key); !v.Equal(w.want) {
			t.Errorf("%s = %v, want %v", w.key, v, w.want)
		}
	}

	if v := rows[0].Get("State"); !v.Equal(table.String("FLORIDA")) {
		t.Errorf("extend mutated its input: State = %v", v)
	}
}

func TestApplyExtend_Errors(t *testing.T) {
	e := NewEvaluator(nil)
	rows := stormRecords(t)

	if _, err := e.ApplyExtend(rows, []Expr{Int(1)}); !errors.Is(err, ErrUnsupportedExpression) {
		t.Errorf("literal item error = %v, want ErrUnsupportedExpression", err)
	}
	if _, err := e.ApplyExtend(rows, []Expr{As("x", Fn("base64_decode_tostring", Str("%%%")))}); err == nil {
		t.Error("expected decode error to propagate")
	}
}
