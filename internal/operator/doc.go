// Package operator models the closed set of color and reposition nodes a
// compositing tool exports in a per-shot effect stack.
//
// Color operators emit native ocio transforms; reposition operators emit
// oiiotool argument slices. Decode maps a node class name plus its raw field
// dictionary onto an operator through a static registry built at package
// initialization, with one defaulting pass per field: missing or malformed
// fields fall back to documented defaults rather than failing the decode.
package operator
