// Package patternbuilder builds the pattern catalog and adjacency tables of
// an overlapping-model texture synthesizer.
//
// A sample grid is quantized into a small palette, every N×N window (plus up
// to seven rotations and reflections) is deduplicated into a weighted
// catalog, and for every direction and ordered pattern pair the overlap test
// decides whether the two patterns may sit side by side. The resulting
// SolverConfig drives an external arc-consistency solver such as the one in
// the wave subpackage; Reconstruct and Preview turn its state back into
// colours.
//
// Tables are built once and never mutated, so concurrent solve attempts may
// share them.
package patternbuilder
