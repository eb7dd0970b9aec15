package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/vegasq/kqlplay/query"
)

func mustRecord(t *testing.T, pairs ...interface{}) query.Record {
	t.Helper()
	r, err := query.NewRecord(pairs...)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	return r
}

func stormResult(t *testing.T) *query.ExecutionResult {
	t.Helper()
	return &query.ExecutionResult{
		ResultRows: []query.Record{
			mustRecord(t, "State", "FLORIDA", "DamageProperty", int32(1200),
				"StartTime", time.Date(2025, 8, 23, 6, 20, 0, 0, time.UTC)),
			mustRecord(t, "State", "TEXAS", "DamageProperty", nil,
				"StartTime", time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)),
		},
	}
}

func failedResult() *query.ExecutionResult {
	return &query.ExecutionResult{
		ExecutionErrors: []query.ExecutionError{{Code: query.CodeUnknownTable, Description: "table 'Nope' not found"}},
	}
}

func TestNew(t *testing.T) {
	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			f, err := New(name, &bytes.Buffer{})
			if err != nil || f == nil {
				t.Fatalf("New(%q) = %v, %v", name, f, err)
			}
		})
	}

	if _, err := New("JSON", &bytes.Buffer{}); err != nil {
		t.Errorf("New(JSON) error = %v, want case-insensitive match", err)
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Error("New(xml) expected error")
	}
}

func TestRowFormatters_FailedResult(t *testing.T) {
	for _, name := range []string{"jsonl", "csv", "tsv", "table", "arrow"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			f, err := New(name, &buf)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			err = f.Format(failedResult())
			if !errors.Is(err, ErrQueryFailed) {
				t.Errorf("Format() error = %v, want ErrQueryFailed", err)
			}
			var execErr query.ExecutionError
			if !errors.As(err, &execErr) || execErr.Code != query.CodeUnknownTable {
				t.Errorf("Format() error = %v, want wrapped UnknownTable", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Format() wrote %q for a failed result", buf.String())
			}
		})
	}
}

func TestFormatter_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	f := NewJSONLFormatter(&first)
	f.SetOutput(&second)
	if err := f.Format(stormResult(t)); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if first.Len() != 0 || second.Len() == 0 {
		t.Errorf("SetOutput() did not redirect output: first=%d second=%d", first.Len(), second.Len())
	}
}
