// Package reposition composes geometric operators into oiiotool arguments.
//
// Processor emits each operator's arguments in order and appends an optional
// reformat stage. Without operators and with only a destination size it acts
// as a plain reformat. It can also fold its transform operators into one
// chained matrix for a given frame size, for renderers that take a single
// warp or corner pin instead of an operator list.
package reposition
