// Package position assigns concrete (column, row) coordinates to layout
// cells and validates their spans.
//
// # Algorithm
//
// Placement runs in three passes over a layout section:
//
//  1. Explicit cells (authored position) are placed first. Each occupied
//     rectangle is checked against the column count and against every
//     previously placed rectangle.
//  2. Row containers give each [model.Row] a sequential row index. Cells in
//     a row take sequential columns, skipping columns blocked by a rowspan
//     from an earlier row.
//  3. Flow cells are placed in row-major order from (0, 0), skipping
//     occupied slots and wrapping to the next row when a span would cross
//     the last column.
//
// Explicit cells always win over flow cells and flow cells keep their
// source order.
//
// # Occupancy
//
// [Occupancy] is a persistent set: [Occupancy.Mark] returns a new set and
// never modifies the receiver. The placement functions fold over cells,
// threading the set through each step.
//
// # Errors
//
// Failures are *validation.Error values with codes span_overflow,
// position_conflict and invalid_position, carrying the offending position,
// the prior occupant and the layout bounds.
package position
