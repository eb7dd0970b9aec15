package output

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestNewZstdWriter(t *testing.T) {
	var compressed bytes.Buffer
	zw, err := NewZstdWriter(&compressed)
	if err != nil {
		t.Fatalf("NewZstdWriter() error = %v", err)
	}
	if err := NewJSONLFormatter(zw).Format(stormResult(t)); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var plain bytes.Buffer
	if err := NewJSONLFormatter(&plain).Format(stormResult(t)); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	decoder, err := zstd.NewReader(&compressed)
	if err != nil {
		t.Fatalf("zstd.NewReader() error = %v", err)
	}
	defer decoder.Close()
	got, err := io.ReadAll(decoder)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, plain.Bytes()) {
		t.Errorf("decompressed = %q, want %q", got, plain.Bytes())
	}
}
