package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryTypeFromFloat32(t *testing.T) {
	tests := []struct {
		raw  float32
		want QueryType
	}{
		{0, QueryTypeVectorOnly},
		{1, QueryTypeCategorical},
		{2, QueryTypeTimestamp},
		{3, QueryTypeBoth},
		// Truncation toward zero, matching the on-disk encoding.
		{2.9, QueryTypeTimestamp},
		{0.5, QueryTypeVectorOnly},
	}
	for _, tt := range tests {
		got, err := QueryTypeFromFloat32(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw %g", tt.raw)
	}
}

func TestQueryTypeFromFloat32_Invalid(t *testing.T) {
	for _, raw := range []float32{-1, 4, 7, 100.5} {
		_, err := QueryTypeFromFloat32(raw)

		var invalid *ErrInvalidQueryType
		require.ErrorAs(t, err, &invalid, "raw %g", raw)
		assert.Equal(t, raw, invalid.Value)
	}
}

func TestQueryType_String(t *testing.T) {
	assert.Equal(t, "VectorOnly", QueryTypeVectorOnly.String())
	assert.Equal(t, "BothConstraints", QueryTypeBoth.String())
	assert.Equal(t, "Unknown(9)", QueryType(9).String())
}

func TestOptionalFilterValue(t *testing.T) {
	v := OptionalFilterValue(2.0)
	assert.True(t, v.IsSet())

	f, ok := v.Value()
	require.True(t, ok)
	assert.Equal(t, float32(2.0), f)

	c, ok := v.Categorical()
	require.True(t, ok)
	assert.Equal(t, int32(2), c)
}

func TestOptionalFilterValue_Unset(t *testing.T) {
	v := UnsetFilterValue
	assert.False(t, v.IsSet())

	_, ok := v.Value()
	assert.False(t, ok)

	_, ok = v.Categorical()
	assert.False(t, ok)
}

func TestOptionalFilterValue_SentinelIsExact(t *testing.T) {
	// Only exactly -1.0 means unset; nearby values are legitimate.
	assert.True(t, OptionalFilterValue(-0.9999999).IsSet())
	assert.True(t, OptionalFilterValue(-1.0000001).IsSet())
	assert.False(t, OptionalFilterValue(-1.0).IsSet())
}

func TestNodeCollection_Access(t *testing.T) {
	s := Schema{Dimension: 3, K: 2}
	c := NewNodeCollection(s)
	require.NoError(t, c.Append(1, 0.5, []float32{1, 2, 3}))
	require.NoError(t, c.Append(2, 0.7, []float32{4, 5, 6}))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, float32(2), c.Categorical(1))
	assert.Equal(t, float32(0.5), c.Timestamp(0))
	assert.Equal(t, []float32{4, 5, 6}, c.Vector(1))

	n, err := c.Node(0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), n.Categorical)
	assert.Equal(t, []float32{1, 2, 3}, n.Vector)
}

func TestNodeCollection_OutOfRange(t *testing.T) {
	c := NewNodeCollection(Schema{Dimension: 3, K: 2})
	require.NoError(t, c.Append(0, 0, []float32{1, 2, 3}))

	_, err := c.Node(1)
	var oor *ErrIndexOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "node", oor.Kind)
	assert.Equal(t, 1, oor.Index)

	_, err = c.Node(-1)
	assert.Error(t, err)
}

func TestNodeCollection_AppendDimensionMismatch(t *testing.T) {
	c := NewNodeCollection(Schema{Dimension: 3, K: 2})
	err := c.Append(0, 0, []float32{1, 2})
	assert.ErrorIs(t, err, ErrVectorLengthMismatch)
}

func TestQueryCollection_Access(t *testing.T) {
	s := Schema{Dimension: 2, K: 2}
	c := NewQueryCollection(s)
	require.NoError(t, c.Append(QueryTypeBoth, 3, 0.1, 0.9, []float32{1, 1}))

	q, err := c.Query(0)
	require.NoError(t, err)
	assert.Equal(t, QueryTypeBoth, q.Type)

	cat, ok := q.Categorical.Categorical()
	require.True(t, ok)
	assert.Equal(t, int32(3), cat)

	_, err = c.Query(5)
	var oor *ErrIndexOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "query", oor.Kind)
}
