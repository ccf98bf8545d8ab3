// Package ociogen synthesizes per-shot OCIO configuration files.
//
// Generator loads a fresh copy of a base configuration on every CreateConfig
// call, embeds the shot's color pipeline as a color space, look, and
// display-view all named after the shot context, rewrites LUT references and
// search paths with environment-variable placeholders, and writes the
// serialized config with the multi-entry search-path block patched in at the
// text level. It also emits the oiiotool argument vector that applies the
// synthesized look through the written config.
package ociogen
