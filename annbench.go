package annbench

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/annbench/dataset"
	"github.com/hupe1980/annbench/distance"
)

// Runner executes the baseline search: for each query, brute-force
// filtered top-K over a deterministic prefix of the node dataset.
type Runner struct {
	schema dataset.Schema
	opts   Options
}

// New creates a Runner for the given schema.
func New(schema dataset.Schema, optFns ...func(o *Options)) (*Runner, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SampleProportion <= 0 || opts.SampleProportion > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleProportion, opts.SampleProportion)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.MetricsCollector == nil {
		opts.MetricsCollector = NoopMetricsCollector{}
	}

	return &Runner{schema: schema, opts: opts}, nil
}

// SampleSize returns the number of leading nodes scanned per query:
// clamp(round(total*SampleProportion), 1, total).
func (r *Runner) SampleSize(total int) int {
	if total <= 0 {
		return 0
	}
	n := int(math.Round(float64(total) * r.opts.SampleProportion))
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	return n
}

// Run produces one result row per query, in query order. The node and
// query collections are only read; they may be shared across runs.
//
// Any failure aborts the whole run. There is no per-query recovery.
func (r *Runner) Run(ctx context.Context, nodes *dataset.NodeCollection, queries *dataset.QueryCollection) (*dataset.ResultSet, error) {
	if nodes == nil || queries == nil {
		return nil, ErrNilCollection
	}
	if nodes.Schema() != r.schema || queries.Schema() != r.schema {
		return nil, ErrSchemaMismatch
	}

	sample := r.SampleSize(nodes.Len())

	r.opts.Logger.DebugContext(ctx, "baseline parameters",
		"k", r.schema.K,
		"sample_proportion", r.opts.SampleProportion,
		"sampled_per_query", sample,
		"workers", r.opts.Workers,
	)

	start := time.Now()

	// Index-addressed buffer keeps query-order output even when queries
	// complete out of order.
	rows := make([][]uint32, queries.Len())

	var err error
	if r.opts.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.opts.Workers)
		for i := range rows {
			g.Go(func() error {
				if e := gctx.Err(); e != nil {
					return e
				}
				row, e := r.searchOne(nodes, queries, i, sample)
				if e != nil {
					return e
				}
				rows[i] = row
				return nil
			})
		}
		err = g.Wait()
	} else {
		for i := range rows {
			if err = ctx.Err(); err != nil {
				break
			}
			if rows[i], err = r.searchOne(nodes, queries, i, sample); err != nil {
				break
			}
		}
	}

	r.opts.Logger.LogRun(ctx, queries.Len(), sample, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	rs := dataset.NewResultSet(r.schema.K, len(rows))
	for _, row := range rows {
		if err := rs.Append(row); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

type candidate struct {
	dist float32
	id   uint32
}

func (r *Runner) searchOne(nodes *dataset.NodeCollection, queries *dataset.QueryCollection, i, sample int) ([]uint32, error) {
	start := time.Now()

	q, err := queries.Query(i)
	if err != nil {
		r.opts.MetricsCollector.RecordSearch(0, time.Since(start), err)
		return nil, fmt.Errorf("resolve query: %w", err)
	}

	bm := qualify(q, nodes, sample)

	candidates := make([]candidate, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		id := it.Next()
		node, err := nodes.Node(int(id))
		if err != nil {
			r.opts.MetricsCollector.RecordSearch(len(candidates), time.Since(start), err)
			return nil, fmt.Errorf("resolve node: %w", err)
		}
		candidates = append(candidates, candidate{
			dist: distance.SquaredL2(q.Vector, node.Vector),
			id:   id,
		})
	}

	// Non-stable sort: tie-break order among equal distances is
	// unspecified and must not be relied upon.
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].dist < candidates[b].dist
	})

	row := make([]uint32, r.schema.K)
	for k := range row {
		row[k] = dataset.PadID
	}
	for k := 0; k < r.schema.K && k < len(candidates); k++ {
		row[k] = candidates[k].id
	}

	r.opts.MetricsCollector.RecordSearch(len(candidates), time.Since(start), nil)
	return row, nil
}
