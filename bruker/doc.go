// Package bruker reconstructs intensity patterns from Bruker RAW binaries.
//
// The RAW4 layout is undocumented, so the decoder does not follow a schema.
// It treats the file as an opaque little-endian buffer and runs a pipeline of
// pure stages over it:
//
//  1. Layout hypotheses locate a tail-anchored intensity block, either a plain
//     float32 array (PlainLayout) or 8-byte value/status records
//     (InterleavedLayout).
//  2. Plausible rejects blocks whose sampled values look like status words,
//     zero fill or a flat region.
//  3. Anchors finds offsets where the header records the point count, and
//     MetadataCandidates reads (start, step) float64 pairs next to each anchor.
//  4. ValidStartStep and Score keep physically sensible two-theta scans and
//     rank them. The best score across every layout and anchor wins; ties keep
//     the first candidate found.
//
// Reconstruct runs the pipeline and reports the chosen layout and metadata;
// Decode turns the result into a pattern.
package bruker
