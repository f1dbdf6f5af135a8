package dataset

import "fmt"

// Node and query records carry their attributes ahead of the vector.
// These offsets are fixed by the file format.
const (
	nodeAttrFields  = 2 // categorical, timestamp
	queryAttrFields = 4 // type, categorical filter, lower bound, upper bound
)

// Schema describes the fixed geometry of a benchmark dataset: the vector
// dimension shared by nodes and queries, and the number of neighbors
// returned per query. It is passed explicitly into the codec and the
// runner so alternate geometries need no recompilation.
type Schema struct {
	// Dimension is the vector length of every node and query vector.
	Dimension int

	// K is the number of nearest identifiers per result row.
	K int
}

// DefaultSchema returns the contest geometry: 100-dimensional vectors,
// top-100 results.
func DefaultSchema() Schema {
	return Schema{Dimension: 100, K: 100}
}

// Validate checks that the schema is usable.
func (s Schema) Validate() error {
	if s.Dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidSchema, s.Dimension)
	}
	if s.K <= 0 {
		return fmt.Errorf("%w: k %d", ErrInvalidSchema, s.K)
	}
	return nil
}

// NodeWidth returns the number of float32 fields per node record.
func (s Schema) NodeWidth() int {
	return nodeAttrFields + s.Dimension
}

// QueryWidth returns the number of float32 fields per query record.
func (s Schema) QueryWidth() int {
	return queryAttrFields + s.Dimension
}
