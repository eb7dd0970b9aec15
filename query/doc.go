// Package query evaluates pipeline queries over in-memory tables.
//
// A query is an already parsed expression tree: a table reference followed by
// pipe stages, each consuming the rows produced by the stage before it:
//
//	StormEvents
//	| where State == "FLORIDA" and DamageProperty > 10000
//	| project State, DamageProperty
//	| take 10
//
// # Basic Usage
//
// Build the tree with the helper constructors and execute it:
//
//	db := query.NewDatabase()
//	if err := db.AddTable(stormEvents); err != nil {
//	    log.Fatal(err)
//	}
//
//	q := query.Pipeline(query.From("StormEvents"),
//	    query.Where(query.Bin(query.OpAnd,
//	        query.Bin(query.OpEqual, query.Col("State"), query.Str("FLORIDA")),
//	        query.Bin(query.OpGreater, query.Col("DamageProperty"), query.Int(10000)))),
//	    query.ProjectOf(query.Col("State"), query.Col("DamageProperty")),
//	    query.TakeN(10),
//	)
//
//	result := db.ExecuteQuery(q)
//	if result.Failed() {
//	    log.Fatal(result.ExecutionErrors[0])
//	}
//
// Trees can also be read from their JSON encoding with DecodeQuery.
//
// # Pipeline Stages
//
//   - where: keeps rows whose condition is true
//   - project: keeps the listed columns, optionally renamed (alias = column)
//   - take: keeps the first n rows; n must be an int or long literal
//   - extend: adds or overwrites columns computed from expressions
//
// # Operators
//
//   - Logical: and, or (short-circuit)
//   - Equality: == and != (case-sensitive), =~ and !~ (case-insensitive)
//   - Ordering: <, <=, >, >=
//   - String: contains, startswith, endswith and their ! negations (case-insensitive)
//   - Unary: -, +, !
//
// # Type System
//
// Values are table.Value. Equality and ordering coerce across kinds:
//   - numeric kinds compare as float64
//   - a number equals a string holding the same number
//   - ordering strings is case-insensitive
//   - ordering against null is an error, null equals only null
//
// # Built-in Functions
//
//   - base64_encode_tostring(x), base64_decode_tostring(s)
//   - tostring(x), toupper(s), tolower(s), strlen(s)
//   - abs, round(x[, digits]), ceiling, sqrt, exp, log, pow(x, y), sign
//   - now(), ago(timespan), todatetime(x), totimespan(x), startofday(dt),
//     getyear, getmonth, dayofmonth, hourofday
//
// Math and date/time functions return null for null input. Register custom
// functions on a FunctionRegistry and pass it with WithFunctions.
//
// # Error Handling
//
// ExecuteQuery never returns an error or panics. Failures are reported in
// ExecutionResult.ExecutionErrors with code UnknownTable when the query names
// an unregistered table and InternalError otherwise.
package query
