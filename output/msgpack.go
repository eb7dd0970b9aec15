package output

import (
	"fmt"
	"io"

	"github.com/vegasq/kqlplay/query"
	"github.com/vegasq/kqlplay/table"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackFormatter outputs the whole result as one MessagePack map with the
// same shape as the JSON result: {"ResultRows": [...], "ExecutionErrors": [...]}.
type MsgpackFormatter struct {
	writer io.Writer
}

// NewMsgpackFormatter creates a new MessagePack formatter
func NewMsgpackFormatter(w io.Writer) *MsgpackFormatter {
	return &MsgpackFormatter{writer: w}
}

// SetOutput sets the output writer
func (m *MsgpackFormatter) SetOutput(w io.Writer) {
	m.writer = w
}

type msgpackError struct {
	Code        string `msgpack:"Code"`
	Description string `msgpack:"Description,omitempty"`
}

// Format writes the result. Row keys keep column order; datetimes use the
// MessagePack timestamp extension and kinds without a native encoding
// (decimal, char, duration, uuid) are written as strings.
func (m *MsgpackFormatter) Format(result *query.ExecutionResult) error {
	if result == nil {
		return failure(result)
	}
	enc := msgpack.NewEncoder(m.writer)

	if err := enc.EncodeMapLen(2); err != nil {
		return err
	}

	if err := enc.EncodeString("ResultRows"); err != nil {
		return err
	}
	if result.ResultRows == nil {
		if err := enc.EncodeNil(); err != nil {
			return err
		}
	} else {
		if err := enc.EncodeArrayLen(len(result.ResultRows)); err != nil {
			return err
		}
		for i, row := range result.ResultRows {
			if err := encodeRecord(enc, row); err != nil {
				return fmt.Errorf("failed to encode row %d: %w", i, err)
			}
		}
	}

	if err := enc.EncodeString("ExecutionErrors"); err != nil {
		return err
	}
	if result.ExecutionErrors == nil {
		return enc.EncodeNil()
	}
	errs := make([]msgpackError, len(result.ExecutionErrors))
	for i, e := range result.ExecutionErrors {
		errs[i] = msgpackError{Code: string(e.Code), Description: e.Description}
	}
	return enc.Encode(errs)
}

func encodeRecord(enc *msgpack.Encoder, row query.Record) error {
	keys := row.Keys()
	if err := enc.EncodeMapLen(len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.Encode(msgpackValue(row.Get(k))); err != nil {
			return fmt.Errorf("column '%s': %w", k, err)
		}
	}
	return nil
}

func msgpackValue(v table.Value) interface{} {
	switch v.Kind() {
	case table.KindDecimal, table.KindChar, table.KindDuration, table.KindUUID:
		return v.String()
	default:
		return v.Interface()
	}
}
