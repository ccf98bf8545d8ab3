// Package faults defines the error markers shared by the effect compiler and
// the config synthesizer.
//
// Every failure surfaced by this module wraps exactly one of the exported
// sentinels so callers can classify it with errors.Is: configuration problems
// (missing base config, unsupported schema versions), decode problems
// (malformed node field shapes), reference-resolution problems (file paths
// that could not be located), and validation problems reported by the color
// config model.
//
// Use Wrap when raising errors from component code so the component and
// operation names travel with the failure.
package faults
