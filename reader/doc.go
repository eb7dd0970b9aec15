// Package reader builds in-memory tables from CSV, typed JSON definitions and
// Apache Parquet files.
//
// Three builders share one parsing core: every raw value is rendered as text
// and parsed as its column's kind with ParseValue. Empty text is null.
//
// # Basic Usage
//
// Building a table from CSV with inferred column types:
//
//	f, err := os.Open("storms.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	def, err := reader.ReadCSV(f, "StormEvents")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	t, err := reader.BuildFromStrings(def)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Schema Inference
//
// BuildFromStrings and BuildFromMatrix ignore declared types. Each non-empty
// value is classified by DetectKind and the column takes the widest kind seen,
// so "1", "2" and "3.1" produce a float64 column. Mixing numbers with
// non-numeric text, or two different non-numeric kinds, produces a string
// column. A column with any empty value is nullable.
//
// # Typed Definitions
//
// BuildFromTyped uses the type name declared on every column:
//
//	{
//	  "Name": "StormEvents",
//	  "Columns": [
//	    {"Name": "StartTime", "Type": "DateTime"},
//	    {"Name": "State", "Type": "String"},
//	    {"Name": "DamageProperty", "Type": "Int32", "Nullable": true}
//	  ],
//	  "Rows": [
//	    {"StartTime": "2025-08-23T06:20:00", "State": "FLORIDA", "DamageProperty": 0}
//	  ]
//	}
//
// Decode it with DecodeTableDef. Values that do not parse as their column's
// kind fail with table.ErrTypeMismatch.
//
// # Parquet Files
//
// BuildFromParquet maps a flat parquet schema to columns. Logical types are
// preferred over physical ones and optional fields become nullable. A glob
// pattern reads several files with identical columns into one table:
//
//	t, err := reader.BuildFromParquet("Events", "data/*.parquet")
//
// # Resource Management
//
// The lower level Reader streams converted rows from one open file. Always
// call Close when done:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	err = r.Each(func(i int, row map[string]table.Value) error {
//	    return events.AddRow(row)
//	})
//
// The package uses github.com/parquet-go/parquet-go for parquet file access.
package reader
