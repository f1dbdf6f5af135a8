package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	v, err := IntToUint32(42)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)

	_, err = IntToUint32(-1)
	assert.Error(t, err)

	_, err = IntToUint32(math.MaxUint32 + 1)
	assert.Error(t, err)
}

func TestUint32ToInt(t *testing.T) {
	v, err := Uint32ToInt(math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, int(math.MaxUint32), v)
}

func TestUint64ToInt(t *testing.T) {
	v, err := Uint64ToInt(123)
	require.NoError(t, err)
	assert.Equal(t, 123, v)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}
