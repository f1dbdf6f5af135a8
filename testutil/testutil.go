package testutil

import (
	"math/rand"

	"github.com/hupe1980/annbench/dataset"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float32 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	return r.rand.Float32()
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Vector generates a random vector with values in [0, 1).
func (r *RNG) Vector(dimensions int) []float32 {
	vec := make([]float32, dimensions)
	for i := range vec {
		vec[i] = r.rand.Float32()
	}
	return vec
}

// Nodes generates a node collection of n records. Categorical
// attributes are integer-valued floats in [0, categories); timestamps
// are uniform in [0, 1).
func (r *RNG) Nodes(s dataset.Schema, n, categories int) *dataset.NodeCollection {
	c := dataset.NewNodeCollection(s)
	for i := 0; i < n; i++ {
		categorical := float32(r.rand.Intn(categories))
		timestamp := r.rand.Float32()
		if err := c.Append(categorical, timestamp, r.Vector(s.Dimension)); err != nil {
			panic(err) // generated vectors always match the schema
		}
	}
	return c
}

// Queries generates a query collection of n records cycling through all
// four query types. Categorical filters are drawn from [0, categories);
// timestamp bounds are an ordered random pair.
func (r *RNG) Queries(s dataset.Schema, n, categories int) *dataset.QueryCollection {
	c := dataset.NewQueryCollection(s)
	for i := 0; i < n; i++ {
		qt := dataset.QueryType(i % 4)

		categorical := dataset.UnsetFilterValue
		lower := dataset.UnsetFilterValue
		upper := dataset.UnsetFilterValue

		if qt == dataset.QueryTypeCategorical || qt == dataset.QueryTypeBoth {
			categorical = dataset.OptionalFilterValue(r.rand.Intn(categories))
		}
		if qt == dataset.QueryTypeTimestamp || qt == dataset.QueryTypeBoth {
			a, b := r.rand.Float32(), r.rand.Float32()
			if a > b {
				a, b = b, a
			}
			lower = dataset.OptionalFilterValue(a)
			upper = dataset.OptionalFilterValue(b)
		}

		if err := c.Append(qt, categorical, lower, upper, r.Vector(s.Dimension)); err != nil {
			panic(err)
		}
	}
	return c
}
