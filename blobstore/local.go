package blobstore

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
)

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &localBlob{File: f, size: info.Size()}, nil
}

// Create creates a blob for writing. The data is staged in a temp file
// in the same directory and renamed into place on Close, so a partially
// written result file never becomes visible.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	target := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, err
	}
	_ = tmp.Chmod(0o644)

	return &localWritableBlob{
		f:      tmp,
		buf:    bufio.NewWriterSize(tmp, 256*1024),
		target: target,
	}, nil
}

type localBlob struct {
	*os.File
	size int64
}

func (b *localBlob) Size() int64 {
	return b.size
}

type localWritableBlob struct {
	f      *os.File
	buf    *bufio.Writer
	target string
}

func (b *localWritableBlob) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *localWritableBlob) Close() error {
	tmpName := b.f.Name()
	defer func() {
		_ = b.f.Close()
		_ = os.Remove(tmpName)
	}()

	if err := b.buf.Flush(); err != nil {
		return err
	}
	if err := b.f.Sync(); err != nil {
		return err
	}
	if err := b.f.Close(); err != nil {
		return err
	}

	// Atomically replace target.
	if err := os.Rename(tmpName, b.target); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(filepath.Dir(b.target)); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
