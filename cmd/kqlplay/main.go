package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/kqlplay/output"
	"github.com/vegasq/kqlplay/query"
	"github.com/vegasq/kqlplay/reader"
	"github.com/vegasq/kqlplay/table"
)

// tableList collects repeated -t flags.
type tableList []string

func (l *tableList) String() string { return strings.Join(*l, ",") }

func (l *tableList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kqlplay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var tables tableList
	fs.Var(&tables, "t", "Load a table: [name=]path.csv|path.json|path.parquet (repeatable; parquet paths may be globs)")
	queryFlag := fs.String("q", "", "Query tree as JSON text, @file, or - for stdin")
	formatFlag := fs.String("f", "json", "Output format: "+strings.Join(output.Formats(), ", "))
	outFlag := fs.String("o", "", "Write output to a file instead of stdout")
	zstdFlag := fs.Bool("zstd", false, "Compress output with zstd")
	verboseFlag := fs.Bool("v", false, "Log debug information to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kqlplay [options]\n\n")
		fmt.Fprintf(stderr, "Run a pipeline query tree against in-memory tables.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  kqlplay -t StormEvents.csv -q @query.json\n")
		fmt.Fprintf(stderr, "  kqlplay -t Storms=data/*.parquet -t users.json -q @query.json -f table\n")
		fmt.Fprintf(stderr, "  kqlplay -t events.csv -q - -f arrow -zstd -o result.arrow.zst < query.json\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *queryFlag == "" {
		fmt.Fprintf(stderr, "Error: missing -q query tree\n\n")
		fs.Usage()
		return 1
	}

	q, err := readQuery(*queryFlag, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing query: %v\n", err)
		return 1
	}

	db := query.NewDatabase(query.WithLogger(logger))
	for _, spec := range tables {
		t, err := loadTable(spec)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading table %s: %v\n", spec, err)
			return 1
		}
		if err := db.AddTable(t); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		logger.Debug("loaded table", "source", spec, "name", t.Name(), "columns", t.Schema().Names(), "rows", t.Len())
	}

	var w io.Writer = stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	var zw io.WriteCloser
	if *zstdFlag {
		zw, err = output.NewZstdWriter(w)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		w = zw
	}

	formatter, err := output.New(*formatFlag, w)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	result := db.ExecuteQuery(q)
	formatErr := formatter.Format(result)
	if zw != nil {
		if err := zw.Close(); err != nil && formatErr == nil {
			formatErr = fmt.Errorf("failed to flush compressed output: %w", err)
		}
	}
	if formatErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", formatErr)
		return 1
	}
	if result.Failed() {
		for _, e := range result.ExecutionErrors {
			logger.Debug("query failed", "code", e.Code, "description", e.Description)
		}
		return 1
	}
	return 0
}

// readQuery decodes the query tree from inline JSON, @file or stdin.
func readQuery(arg string, stdin io.Reader) (query.Source, error) {
	switch {
	case arg == "-":
		return query.DecodeQuery(stdin)
	case strings.HasPrefix(arg, "@"):
		f, err := os.Open(arg[1:])
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return query.DecodeQuery(f)
	default:
		return query.ParseQueryTree([]byte(arg))
	}
}

// loadTable builds a table from [name=]path, picking the builder by file
// extension. Without an explicit name, CSV and parquet tables are named after
// the file and JSON tables keep the name they declare.
func loadTable(spec string) (*table.Table, error) {
	name, path := "", spec
	if i := strings.Index(spec, "="); i > 0 {
		name, path = spec[:i], spec[i+1:]
	}
	explicit := name != ""
	if !explicit {
		name = reader.TableNameFromPath(path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return reader.BuildFromParquet(name, path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		def, err := reader.ReadCSV(f, name)
		if err != nil {
			return nil, err
		}
		return reader.BuildFromStrings(def)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		def, err := reader.DecodeTableDef(f)
		if err != nil {
			return nil, err
		}
		if explicit || def.Name == "" {
			def.Name = name
		}
		return reader.BuildFromTyped(def)
	default:
		return nil, fmt.Errorf("unsupported table file extension %q (want .csv, .json or .parquet)", ext)
	}
}
