package dataset

import "fmt"

// QueryType is the closed set of query variants supported by the format.
type QueryType uint8

const (
	// QueryTypeVectorOnly matches every node.
	QueryTypeVectorOnly QueryType = iota
	// QueryTypeCategorical matches nodes whose categorical attribute
	// equals the query's categorical filter value.
	QueryTypeCategorical
	// QueryTypeTimestamp matches nodes whose timestamp lies within the
	// query's closed [lower, upper] interval.
	QueryTypeTimestamp
	// QueryTypeBoth requires both the categorical and timestamp match.
	QueryTypeBoth
)

// String returns a human-readable name for the query type.
func (t QueryType) String() string {
	switch t {
	case QueryTypeVectorOnly:
		return "VectorOnly"
	case QueryTypeCategorical:
		return "CategoricalConstraint"
	case QueryTypeTimestamp:
		return "TimestampConstraint"
	case QueryTypeBoth:
		return "BothConstraints"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// QueryTypeFromFloat32 decodes a query type from its on-disk float
// encoding. The float is truncated toward zero; any result outside
// {0,1,2,3} is a decode error carrying the raw value.
func QueryTypeFromFloat32(v float32) (QueryType, error) {
	switch int32(v) {
	case 0:
		return QueryTypeVectorOnly, nil
	case 1:
		return QueryTypeCategorical, nil
	case 2:
		return QueryTypeTimestamp, nil
	case 3:
		return QueryTypeBoth, nil
	default:
		return 0, &ErrInvalidQueryType{Value: v}
	}
}

// OptionalFilterValue is a float-backed optional scalar. The sentinel
// -1.0 means unset; any other value is set.
//
// The comparison against the sentinel is exact floating equality. A
// legitimately encoded value of exactly -1.0 is indistinguishable from
// unset; this is a documented limitation of the dataset format, not a
// defect to compensate for here.
type OptionalFilterValue float32

// UnsetFilterValue is the sentinel for an absent filter value.
const UnsetFilterValue OptionalFilterValue = -1.0

// IsSet reports whether the value is present.
func (v OptionalFilterValue) IsSet() bool {
	return v != UnsetFilterValue
}

// Value returns the scalar and whether it is set.
func (v OptionalFilterValue) Value() (float32, bool) {
	if !v.IsSet() {
		return 0, false
	}
	return float32(v), true
}

// Categorical returns the value truncated to its integer category and
// whether it is set.
func (v OptionalFilterValue) Categorical() (int32, bool) {
	if !v.IsSet() {
		return 0, false
	}
	return int32(v), true
}

// NodeCollection holds a node dataset column-wise: one attribute array
// per field plus a single flat vector buffer. It is immutable once
// loaded and safe for concurrent reads.
type NodeCollection struct {
	schema      Schema
	categorical []float32
	timestamps  []float32
	vectors     []float32 // len == Len()*schema.Dimension
}

// NewNodeCollection creates an empty collection for the given schema.
func NewNodeCollection(s Schema) *NodeCollection {
	return &NodeCollection{schema: s}
}

// Schema returns the collection's schema.
func (c *NodeCollection) Schema() Schema { return c.schema }

// Len returns the number of nodes.
func (c *NodeCollection) Len() int { return len(c.categorical) }

// Append adds a node. The vector is copied.
func (c *NodeCollection) Append(categorical, timestamp float32, vector []float32) error {
	if len(vector) != c.schema.Dimension {
		return fmt.Errorf("%w: expected %d, got %d", ErrVectorLengthMismatch, c.schema.Dimension, len(vector))
	}
	c.categorical = append(c.categorical, categorical)
	c.timestamps = append(c.timestamps, timestamp)
	c.vectors = append(c.vectors, vector...)
	return nil
}

// Categorical returns the categorical attribute of node i without
// bounds checking beyond the runtime's. Use Node for checked access.
func (c *NodeCollection) Categorical(i int) float32 { return c.categorical[i] }

// Timestamp returns the timestamp attribute of node i.
func (c *NodeCollection) Timestamp(i int) float32 { return c.timestamps[i] }

// Vector returns the vector of node i as a subslice of the backing
// buffer. Callers must not modify it.
func (c *NodeCollection) Vector(i int) []float32 {
	d := c.schema.Dimension
	return c.vectors[i*d : (i+1)*d : (i+1)*d]
}

// NodeView is a read-only view of a single node.
type NodeView struct {
	Categorical float32
	Timestamp   float32
	Vector      []float32
}

// Node returns a checked view of node i.
func (c *NodeCollection) Node(i int) (NodeView, error) {
	if i < 0 || i >= c.Len() {
		return NodeView{}, &ErrIndexOutOfRange{Kind: "node", Index: i, Len: c.Len()}
	}
	return NodeView{
		Categorical: c.categorical[i],
		Timestamp:   c.timestamps[i],
		Vector:      c.Vector(i),
	}, nil
}

// QueryCollection holds a query dataset column-wise.
type QueryCollection struct {
	schema      Schema
	types       []QueryType
	categorical []OptionalFilterValue
	lower       []OptionalFilterValue
	upper       []OptionalFilterValue
	vectors     []float32
}

// NewQueryCollection creates an empty collection for the given schema.
func NewQueryCollection(s Schema) *QueryCollection {
	return &QueryCollection{schema: s}
}

// Schema returns the collection's schema.
func (c *QueryCollection) Schema() Schema { return c.schema }

// Len returns the number of queries.
func (c *QueryCollection) Len() int { return len(c.types) }

// Append adds a query. The vector is copied.
func (c *QueryCollection) Append(t QueryType, categorical, lower, upper OptionalFilterValue, vector []float32) error {
	if len(vector) != c.schema.Dimension {
		return fmt.Errorf("%w: expected %d, got %d", ErrVectorLengthMismatch, c.schema.Dimension, len(vector))
	}
	c.types = append(c.types, t)
	c.categorical = append(c.categorical, categorical)
	c.lower = append(c.lower, lower)
	c.upper = append(c.upper, upper)
	c.vectors = append(c.vectors, vector...)
	return nil
}

// Vector returns the vector of query i. Callers must not modify it.
func (c *QueryCollection) Vector(i int) []float32 {
	d := c.schema.Dimension
	return c.vectors[i*d : (i+1)*d : (i+1)*d]
}

// QueryView is a read-only view of a single query.
type QueryView struct {
	Type        QueryType
	Categorical OptionalFilterValue
	Lower       OptionalFilterValue
	Upper       OptionalFilterValue
	Vector      []float32
}

// Query returns a checked view of query i.
func (c *QueryCollection) Query(i int) (QueryView, error) {
	if i < 0 || i >= c.Len() {
		return QueryView{}, &ErrIndexOutOfRange{Kind: "query", Index: i, Len: c.Len()}
	}
	return QueryView{
		Type:        c.types[i],
		Categorical: c.categorical[i],
		Lower:       c.lower[i],
		Upper:       c.upper[i],
		Vector:      c.Vector(i),
	}, nil
}
