// Package distance provides vector distance calculations for the
// baseline search. Squared L2 is used directly (unrooted) as the
// ranking distance; taking the root would not change the ordering.
package distance
