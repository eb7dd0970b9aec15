// Package output provides formatters for writing query results.
//
// This package defines the Formatter interface and one implementation per
// output format. All formatters consume a *query.ExecutionResult.
//
// # Supported Formats
//
//   - json: the whole result object, rows or errors, as indented JSON
//   - jsonl: one JSON object per row (suitable for streaming)
//   - csv: comma-separated values with a header row
//   - tsv: tab-separated values with a header row
//   - table: an aligned text table for terminals
//   - msgpack: the whole result object as MessagePack
//   - arrow: an Arrow IPC stream with one record batch
//
// The json and msgpack formatters write execution errors as data. The other
// formatters only write rows and return an error wrapping ErrQueryFailed
// when the result failed.
//
// # Basic Usage
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
//
// # Compression
//
// Any formatter can write through a ZStandard stream:
//
//	zw, err := output.NewZstdWriter(file)
//	if err != nil {
//	    return err
//	}
//	formatter := output.NewJSONLFormatter(zw)
//	if err := formatter.Format(result); err != nil {
//	    return err
//	}
//	return zw.Close()
//
// # Column Order
//
// Row-oriented formats keep each record's column order. Tabular formats use
// the result columns in the order they were first seen, leaving a cell empty
// (or null) when a row lacks that column.
package output
