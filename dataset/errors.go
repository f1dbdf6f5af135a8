package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema is returned for non-positive dimensions or K.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrEmptyDataset is returned when a file declares zero records.
	// A benchmark run over an empty set is meaningless, so this is
	// treated as malformed input rather than an empty collection.
	ErrEmptyDataset = errors.New("dataset declares zero records")

	// ErrTruncated is returned when the declared record count exceeds
	// the bytes actually present in the file.
	ErrTruncated = errors.New("truncated dataset")

	// ErrVectorLengthMismatch is returned on write when not all rows
	// share the vector length of the first row.
	ErrVectorLengthMismatch = errors.New("all rows must have the same number of dimensions")
)

// ErrInvalidQueryType indicates a query type code outside {0,1,2,3}.
//
// Value carries the offending raw float from the file.
type ErrInvalidQueryType struct {
	Value float32
}

func (e *ErrInvalidQueryType) Error() string {
	return fmt.Sprintf("invalid query type value: %g", e.Value)
}

// ErrIndexOutOfRange indicates a defensive bounds check failure when
// resolving a record by position.
type ErrIndexOutOfRange struct {
	Kind  string // "node", "query" or "result"
	Index int
	Len   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Kind, e.Index, e.Len)
}
