package annbench

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each dataset load.
	// records is the number of rows materialized, err is nil if successful.
	RecordLoad(records int, duration time.Duration, err error)

	// RecordSearch is called after each per-query search.
	// candidates is the number of sampled nodes that passed the filter.
	RecordSearch(candidates int, duration time.Duration, err error)

	// RecordWrite is called after the result set is written.
	RecordWrite(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordWrite(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// Safe for concurrent use.
type BasicMetricsCollector struct {
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadTotalNanos   atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	CandidatesTotal  atomic.Int64
	WriteCount       atomic.Int64
	WriteErrors      atomic.Int64
	WriteTotalNanos  atomic.Int64
}

func (c *BasicMetricsCollector) RecordLoad(records int, duration time.Duration, err error) {
	c.LoadCount.Add(1)
	c.LoadTotalNanos.Add(int64(duration))
	if err != nil {
		c.LoadErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSearch(candidates int, duration time.Duration, err error) {
	c.SearchCount.Add(1)
	c.SearchTotalNanos.Add(int64(duration))
	c.CandidatesTotal.Add(int64(candidates))
	if err != nil {
		c.SearchErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordWrite(rows int, duration time.Duration, err error) {
	c.WriteCount.Add(1)
	c.WriteTotalNanos.Add(int64(duration))
	if err != nil {
		c.WriteErrors.Add(1)
	}
}
