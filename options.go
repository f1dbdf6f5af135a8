package annbench

// Options configures the baseline runner.
type Options struct {
	// SampleProportion is the fraction of the node collection's leading
	// prefix scanned per query. The sampled size is
	// clamp(round(total*SampleProportion), 1, total). Must be in (0, 1].
	SampleProportion float64

	// Workers is the number of queries processed concurrently.
	// Values <= 1 run queries sequentially. Queries never write shared
	// state, so no synchronization beyond result assembly is needed.
	Workers int

	// Logger receives structured progress output. The search core
	// itself is silent; only orchestration logs.
	Logger *Logger

	// MetricsCollector receives per-operation metrics.
	MetricsCollector MetricsCollector
}

// DefaultOptions are the options used when none are overridden.
// The sample proportion matches the contest baseline.
var DefaultOptions = Options{
	SampleProportion: 0.001,
	Workers:          1,
}
