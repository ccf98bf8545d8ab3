// Package effect loads per-shot effect documents and compiles them into
// ordered operator lists.
//
// Compiler handles the effect-stack document exported by the editorial tool:
// it stable-sorts nodes by their sub-track index, skips classes without a
// registered decoder, resolves relative file references, and partitions the
// decoded operators into color and reposition lists whose relative order
// matches the source stack. LookFile handles the look-product document
// carrying an ordered list of LUT descriptors around a working space.
//
// A failed load is all-or-nothing: malformed documents leave both operator
// lists empty. Unresolvable file references are soft failures; the literal
// path is kept and a warning logged.
package effect
