// Package model provides the intermediate representation (IR) for report
// layouts.
//
// The IR is an immutable tree built once per render request by the
// authoring layer. The positioning engine, the property resolver and every
// renderer backend read it; none of them modify it in place.
//
// # Layouts
//
// A [Layout] is one of three kinds, identified by [NodeKind]:
//
//   - [KindGrid] - cells placed on a 2-D track grid
//   - [KindTable] - a grid with header/footer row groups and default borders
//   - [KindStack] - children laid out one after another in a direction
//
// Layout children are [Cell] or [Row] values. Tables additionally carry
// [Header] and [Footer] sections.
//
//	table := model.NewTable(model.Properties{"columns": []any{"1fr", "2fr"}},
//	    model.NewRow(nil,
//	        model.NewCell(model.Label{Text: "Name"}),
//	        model.NewCell(model.Field{Source: []string{"name"}}),
//	    ),
//	)
//
// # Content
//
// Cells hold an ordered list of [Content] nodes:
//
//   - [Label] - literal text with [path] placeholders
//   - [Field] - a value looked up from the data context
//   - [NestedLayout] - a complete layout nested in the cell
//
// # Geometry
//
// [Rect] describes the occupied rectangle of a positioned cell and supports
// intersection and containment tests.
//
// # Input data
//
// [Dataset] is the contract with the query layer: records, computed
// variables and pre-aggregated groups.
package model
