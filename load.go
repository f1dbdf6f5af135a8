package annbench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/annbench/blobstore"
	"github.com/hupe1980/annbench/dataset"
	"github.com/hupe1980/annbench/internal/compress"
	"github.com/hupe1980/annbench/internal/resource"
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// MemoryLimitBytes bounds the memory reserved for raw blob bytes
	// before decoding. 0 disables the limit.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec throttles dataset reads. 0 disables the limit.
	IOLimitBytesPerSec int64

	// Logger receives load/write progress.
	Logger *Logger

	// MetricsCollector receives load/write metrics.
	MetricsCollector MetricsCollector
}

// Loader reads datasets from a blob store and writes result files back
// to it. Compressed blobs (zstd, lz4) are unwrapped transparently.
type Loader struct {
	store   blobstore.BlobStore
	ctrl    *resource.Controller
	logger  *Logger
	metrics MetricsCollector
}

// NewLoader creates a Loader on top of the given store.
func NewLoader(store blobstore.BlobStore, optFns ...func(o *LoaderOptions)) *Loader {
	opts := LoaderOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.MetricsCollector == nil {
		opts.MetricsCollector = NoopMetricsCollector{}
	}

	var ctrl *resource.Controller
	if opts.MemoryLimitBytes > 0 || opts.IOLimitBytesPerSec > 0 {
		ctrl = resource.NewController(resource.Config{
			MemoryLimitBytes:   opts.MemoryLimitBytes,
			IOLimitBytesPerSec: opts.IOLimitBytesPerSec,
		})
	}

	return &Loader{
		store:   store,
		ctrl:    ctrl,
		logger:  opts.Logger,
		metrics: opts.MetricsCollector,
	}
}

// Nodes loads a node dataset.
func (l *Loader) Nodes(ctx context.Context, name string, s dataset.Schema) (*dataset.NodeCollection, error) {
	start := time.Now()

	var nodes *dataset.NodeCollection
	err := l.read(ctx, name, func(r io.Reader) error {
		var err error
		nodes, err = dataset.ReadNodes(r, s)
		return err
	})

	records := 0
	if nodes != nil {
		records = nodes.Len()
	}
	l.metrics.RecordLoad(records, time.Since(start), err)
	l.logger.LogLoad(ctx, name, records, time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("load nodes %q: %w", name, err)
	}
	return nodes, nil
}

// Queries loads a query dataset.
func (l *Loader) Queries(ctx context.Context, name string, s dataset.Schema) (*dataset.QueryCollection, error) {
	start := time.Now()

	var queries *dataset.QueryCollection
	err := l.read(ctx, name, func(r io.Reader) error {
		var err error
		queries, err = dataset.ReadQueries(r, s)
		return err
	})

	records := 0
	if queries != nil {
		records = queries.Len()
	}
	l.metrics.RecordLoad(records, time.Since(start), err)
	l.logger.LogLoad(ctx, name, records, time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("load queries %q: %w", name, err)
	}
	return queries, nil
}

// WriteResults writes the result set to the store.
func (l *Loader) WriteResults(ctx context.Context, name string, rs *dataset.ResultSet) error {
	start := time.Now()

	err := l.writeResults(ctx, name, rs)

	l.metrics.RecordWrite(rs.Len(), time.Since(start), err)
	l.logger.LogWrite(ctx, name, rs.Len(), time.Since(start), err)

	if err != nil {
		return fmt.Errorf("write results %q: %w", name, err)
	}
	return nil
}

func (l *Loader) writeResults(ctx context.Context, name string, rs *dataset.ResultSet) error {
	w, err := l.store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := dataset.WriteResults(w, rs); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (l *Loader) read(ctx context.Context, name string, decode func(io.Reader) error) error {
	blob, err := l.store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	// Reserve the blob size as a proxy for decode memory; the decoded
	// collection is the same order of magnitude.
	size := blob.Size()
	if err := l.ctrl.AcquireMemory(ctx, size); err != nil {
		return err
	}
	defer l.ctrl.ReleaseMemory(size)

	r, err := compress.NewReader(l.ctrl.RateLimitedReader(ctx, blob))
	if err != nil {
		return err
	}

	return decode(r)
}
