// Package property cascades authored layout, row and cell properties and
// normalizes their heterogeneous encodings into one canonical value set.
//
// Every backend reads the normalized values ([Set], [TextStyle]) and maps
// them into its own syntax, so property semantics are identical across
// HTML, markup and JSON output.
//
// # Normalization
//
//   - [Track]: auto, fraction, fixed length, minmax, min-content,
//     max-content, fit-content
//   - [Alignment]: horizontal {start, center, end, justify} and vertical
//     {start, center, end}
//   - [Color]: none, named token or hex
//   - [Stroke]: none or thickness, paint and dash style
//   - [FontWeight]: named weights mapped to CSS numbers or markup names
//
// # Cascade
//
// Layout, row and cell properties cascade in that order; the most specific
// non-nil value wins and values are never merged.
//
// # Function-valued properties
//
// A property value may be a [model.PropertyFunc]. It is evaluated per cell
// with the cell's column, row and data context. A failing function yields
// no value and a function_evaluation_failure warning. [Expr] compiles an
// expression string into such a function.
package property
