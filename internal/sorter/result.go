package sorter

import (
	"sort"

	"github.com/kozaktomas/face-sorter/internal/align"
)

// Entry is one scored face. Scalar holds the metric for scalar methods;
// Landmarks holds the comparison vector for the face methods. Aggregate is
// populated only by the dissimilarity pass.
type Entry struct {
	Name      string
	Scalar    float64
	Landmarks align.LandmarkSet
	Aggregate float64
}

// ResultSet is the ordered collection of scored faces for one run. It is
// built append-only during scoring and reordered in place by the ranking
// and clustering passes. Entries are never removed.
type ResultSet []Entry

// Append adds an entry at the end of the set.
func (r *ResultSet) Append(e Entry) {
	*r = append(*r, e)
}

// Swap exchanges the entries at positions i and j in place.
func (r ResultSet) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

// Names returns the identifiers in current order.
func (r ResultSet) Names() []string {
	names := make([]string, len(r))
	for i, e := range r {
		names[i] = e.Name
	}
	return names
}

// sortByScalar orders the set by the scalar metric. The sort is stable so
// equal metrics keep their insertion order.
func (r ResultSet) sortByScalar(ascending bool) {
	sort.SliceStable(r, func(i, j int) bool {
		if ascending {
			return r[i].Scalar < r[j].Scalar
		}
		return r[i].Scalar > r[j].Scalar
	})
}

// sortByAggregate orders the set descending by the aggregate
// dissimilarity score, stable within equal scores.
func (r ResultSet) sortByAggregate() {
	sort.SliceStable(r, func(i, j int) bool {
		return r[i].Aggregate > r[j].Aggregate
	})
}
