// Package geometry implements the 3x3 homogeneous matrix algebra behind the
// reposition operators.
//
// Key entry points:
//   - Calculate: per-node composition of translate/rotate/scale about a pivot
//   - Chain: composition across an ordered node stack, with optional flip and
//     flop conversions between upper-left and lower-left image origins
//   - Matrix.CSV: row-major CSV of the transposed matrix, the layout the
//     oiiotool warp operator expects
//   - CornerPin: the four frame corners mapped through a composed matrix
//
// Composition order is load-bearing and never commutative; see the function
// comments for the exact products.
package geometry
