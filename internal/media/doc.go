// Package media models per-frame image metadata and frame sequences.
//
// Metadata is supplied by an external probing component and consumed here;
// nothing in this package shells out to inspect pixels. ImageInfo carries the
// documented defaults for every field a caller leaves unset, and Sequence
// groups frame files into ranges with padding-aware name patterns.
package media
