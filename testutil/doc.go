// Package testutil provides deterministic dataset generators for tests
// and benchmarks.
package testutil
