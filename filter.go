package annbench

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/annbench/dataset"
)

// categoricalEpsilon bounds float round-trip noise when comparing a
// node's categorical attribute against an integer filter value. This is
// the float32 machine epsilon, not a tolerance band: attributes are
// integer-valued categories stored as floats.
const categoricalEpsilon = 1.1920929e-07

// MatchesFilter reports whether a node with the given attributes
// satisfies the query's filter. It is a pure function of the query type,
// the query's filter fields and the candidate's attributes.
func MatchesFilter(q dataset.QueryView, categorical, timestamp float32) bool {
	switch q.Type {
	case dataset.QueryTypeVectorOnly:
		return true
	case dataset.QueryTypeCategorical:
		return matchesCategorical(q, categorical)
	case dataset.QueryTypeTimestamp:
		return matchesTimestamp(q, timestamp)
	case dataset.QueryTypeBoth:
		return matchesCategorical(q, categorical) && matchesTimestamp(q, timestamp)
	default:
		return false
	}
}

func matchesCategorical(q dataset.QueryView, categorical float32) bool {
	v, ok := q.Categorical.Categorical()
	if !ok {
		return false
	}
	d := categorical - float32(v)
	if d < 0 {
		d = -d
	}
	return d < categoricalEpsilon
}

func matchesTimestamp(q dataset.QueryView, timestamp float32) bool {
	lower, ok := q.Lower.Value()
	if !ok {
		return false
	}
	upper, ok := q.Upper.Value()
	if !ok {
		// A single-sided bound range is not supported; it rejects all
		// candidates rather than matching half-open.
		return false
	}
	return timestamp >= lower && timestamp <= upper
}

// qualify materializes the ids of the sampled prefix that pass the
// query's filter into a bitmap. The scan phase iterates the bitmap in
// ascending id order.
func qualify(q dataset.QueryView, nodes *dataset.NodeCollection, sample int) *roaring.Bitmap {
	bm := roaring.New()
	if q.Type == dataset.QueryTypeVectorOnly {
		bm.AddRange(0, uint64(sample))
		return bm
	}
	for i := 0; i < sample; i++ {
		if MatchesFilter(q, nodes.Categorical(i), nodes.Timestamp(i)) {
			bm.Add(uint32(i))
		}
	}
	return bm
}
