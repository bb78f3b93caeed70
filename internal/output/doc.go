// Package output formats command results for stdout.
//
// Supported formats:
//   - text: human-readable tables and key-value pairs (default)
//   - json: pretty-printed JSON
//   - ndjson: one JSON value per line
//   - table: aligned columns
//   - yaml: YAML
//
// The format and the optional --query (jq) and --jsonpath filters travel in
// the context, set once by the root command:
//
//	ctx = output.WithFormat(ctx, format)
//	ctx = output.WithQuery(ctx, query)
//	printer := output.NewPrinter(stdout, output.FormatFromContext(ctx))
//	return printer.Print(ctx, data)
//
// Values implementing Tabler print as a table in text and table formats when
// no filter is applied. Everything else is normalized through JSON first, so
// struct json tags decide field names in every format.
package output
