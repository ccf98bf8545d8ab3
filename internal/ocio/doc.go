// Package ocio models an OpenColorIO configuration document.
//
// Config wraps a parsed .ocio YAML document and supports the mutations the
// config synthesizer needs: environment variables, search paths, color
// spaces, looks, display views, and active view lists. The document is kept
// as a YAML node tree so every section of the base configuration survives a
// load/serialize round trip untouched, including transform payloads this
// package does not model.
//
// Serialization is a purpose-built writer emitting OCIO's tagged YAML layout.
// Note the search-path quirk: Serialize emits only the first search path;
// callers that need the full list must patch the serialized text line-wise
// (see SearchPaths and the generator package).
package ocio
