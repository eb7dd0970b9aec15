package output

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewZstdWriter wraps w so everything written through it is ZStandard
// compressed at the default level. Close must be called to flush the final
// frame; it does not close w.
func NewZstdWriter(w io.Writer) (io.WriteCloser, error) {
	encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return encoder, nil
}
