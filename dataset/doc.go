// Package dataset implements the binary dataset format used by the
// SIGMOD 2024 contest benchmarks and the in-memory record model for it.
//
// All files are little-endian with 32-bit fields. Node and query files
// carry a uint32 record count header followed by fixed-width float32
// records; result files are headerless rows of K uint32 identifiers.
//
// Collections are stored column-wise (structure of arrays) and are
// immutable once loaded.
package dataset
