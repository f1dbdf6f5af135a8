package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	w, err := store.Create(ctx, "sub/data.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "sub/data.bin")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(5), blob.Size())
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestLocalStore_OpenNotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_CreateIsAtomic(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	w, err := store.Create(ctx, "data.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	// Before Close the target must not exist; only the temp file does.
	_, err = os.Stat(filepath.Join(root, "data.bin"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(root, "data.bin"))
	assert.NoError(t, err)

	// The temp file is gone after the rename.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.bin", entries[0].Name())
}

func TestLocalStore_CreateOverwrites(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, payload := range []string{"first", "second"} {
		w, err := store.Create(ctx, "data.bin")
		require.NoError(t, err)
		_, err = w.Write([]byte(payload))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	blob, err := store.Open(ctx, "data.bin")
	require.NoError(t, err)
	defer blob.Close()

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w, err := store.Create(ctx, "data.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "data.bin")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(5), blob.Size())
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestMemoryStore_OpenNotFound(t *testing.T) {
	_, err := NewMemoryStore().Open(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CommitOnClose(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w, err := store.Create(ctx, "data.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("pending"))
	require.NoError(t, err)

	// Not visible until Close.
	_, err = store.Open(ctx, "data.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	_, err = store.Open(ctx, "data.bin")
	assert.NoError(t, err)

	// Reuse after Close is rejected.
	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.ErrorIs(t, w.Close(), io.ErrClosedPipe)
}

func TestMemoryStore_OpenReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "data.bin", []byte("abc")))

	blob, err := store.Open(ctx, "data.bin")
	require.NoError(t, err)
	buf, err := io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())

	buf[0] = 'X'

	again, err := store.Open(ctx, "data.bin")
	require.NoError(t, err)
	defer again.Close()
	data, err := io.ReadAll(again)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}
