package annbench

import "errors"

var (
	// ErrInvalidSampleProportion is returned when the configured sample
	// proportion is outside (0, 1].
	ErrInvalidSampleProportion = errors.New("sample proportion must be in (0, 1]")

	// ErrNilCollection is returned when Run is handed a nil node or
	// query collection.
	ErrNilCollection = errors.New("node and query collections must be non-nil")

	// ErrSchemaMismatch is returned when the collections were loaded
	// with a different schema than the runner was built with.
	ErrSchemaMismatch = errors.New("collection schema does not match runner schema")
)
