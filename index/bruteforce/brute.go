package bruteforce

import (
	"container/heap"
	"fmt"

	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/vector"
)

// Ranker is a brute-force index.Searcher using one fixed metric. The zero
// value uses squared Euclidean distance.
type Ranker struct {
	distance vector.DistanceFunc
}

// New creates a Ranker for metric.
func New(metric vector.Metric) (*Ranker, error) {
	fn := metric.Function()
	if fn == nil {
		return nil, fmt.Errorf("bruteforce: unsupported metric %q", metric)
	}
	return &Ranker{distance: fn}, nil
}

// FindNeighbors runs a squared-Euclidean kNN query with the default Ranker.
func FindNeighbors(query vector.Vector, ref *index.Reference, k int) (index.Neighbors, error) {
	return defaultRanker.Neighbors(query, ref, k)
}

var defaultRanker = &Ranker{distance: vector.SquaredL2}

// Neighbors scans every example of ref and returns the k closest to query.
func (r *Ranker) Neighbors(query vector.Vector, ref *index.Reference, k int) (index.Neighbors, error) {
	if ref.Size() == 0 {
		return nil, index.ErrEmptyIndex
	}
	if k <= 0 {
		return nil, index.ErrInvalidK
	}
	if len(query) != ref.Dim() {
		return nil, &index.InvalidQueryError{QueryDim: len(query), IndexDim: ref.Dim()}
	}
	if k > ref.Size() {
		k = ref.Size()
	}
	distance := r.distance
	if distance == nil {
		distance = vector.SquaredL2
	}
	h := make(candidates, 0, k)
	examples := ref.Examples()
	for i := range examples {
		d, err := distance(query, examples[i].Vector)
		if err != nil {
			return nil, fmt.Errorf("bruteforce: example %d: %w", i, err)
		}
		c := candidate{position: i, distance: d}
		if h.Len() < k {
			heap.Push(&h, c)
			continue
		}
		if c.before(h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}
	out := make(index.Neighbors, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		c := heap.Pop(&h).(candidate)
		out[i] = index.Neighbor{Example: ref.Example(c.position), Distance: c.distance}
	}
	return out, nil
}

var _ index.Searcher = (*Ranker)(nil)
