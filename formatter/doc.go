// Package formatter renders stations, priced trips and session state for the
// transitfare command.
//
// This package is organized into:
//   - formatter.go: the Formatter and output format selection
//   - table.go: human-readable tables (go-pretty)
//   - json.go: indented JSON for scripts
package formatter
