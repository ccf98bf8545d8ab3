// Command lutforge compiles per-shot effect documents into OCIO configs and
// oiiotool argument vectors. It never invokes a renderer.
package main
