package index

import "github.com/viant/pathknn/vector"

// Searcher answers kNN queries against a Reference.
type Searcher interface {
	// Neighbors returns up to k examples of ref closest to query, ordered by
	// non-decreasing distance with ties kept in insertion order. When k
	// exceeds ref.Size() all examples are returned.
	Neighbors(query vector.Vector, ref *Reference, k int) (Neighbors, error)
}
