// Package scan provides the numeric line scanning primitives shared by the text
// decoders: BOM-aware line iteration, field splitting and finite float parsing.
package scan
