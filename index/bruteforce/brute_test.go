package bruteforce

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/vector"
)

func build(t *testing.T, vectors ...[]float64) *index.Reference {
	t.Helper()
	records := make([]index.Record, len(vectors))
	for i, v := range vectors {
		records[i] = index.Record{Label: index.Label(i), Embedding: v}
	}
	ref, err := index.Build(records, index.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)
	return ref
}

func TestFindNeighbors(t *testing.T) {
	ref := build(t, []float64{0, 0}, []float64{10, 10}, []float64{1, 1}, []float64{-2, 0})

	testCases := []struct {
		description string
		query       vector.Vector
		k           int
		labels      []index.Label
		distances   []float64
	}{
		{description: "k=1", query: vector.Vector{0, 1}, k: 1, labels: []index.Label{0}, distances: []float64{1}},
		{description: "k=2", query: vector.Vector{0, 1}, k: 2, labels: []index.Label{0, 2}, distances: []float64{1, 1}},
		{description: "k=3", query: vector.Vector{0, 1}, k: 3, labels: []index.Label{0, 2, 3}, distances: []float64{1, 1, 5}},
		{description: "k above size", query: vector.Vector{0, 1}, k: 10, labels: []index.Label{0, 2, 3, 1}, distances: []float64{1, 1, 5, 181}},
		{description: "exact match", query: vector.Vector{10, 10}, k: 1, labels: []index.Label{1}, distances: []float64{0}},
	}
	for _, testCase := range testCases {
		actual, err := FindNeighbors(testCase.query, ref, testCase.k)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.labels, actual.Labels(), testCase.description)
		assert.Equal(t, testCase.distances, actual.Distances(), testCase.description)
	}
}

func TestFindNeighbors_TiesKeepInsertionOrder(t *testing.T) {
	// every example is at distance 1 from the origin
	ref := build(t, []float64{1, 0}, []float64{0, 1}, []float64{-1, 0}, []float64{0, -1}, []float64{0, 1})
	for k := 1; k <= 5; k++ {
		actual, err := FindNeighbors(vector.Vector{0, 0}, ref, k)
		require.NoError(t, err)
		require.Len(t, actual, k)
		for i := range actual {
			assert.Equal(t, i, actual[i].Example.Position, "k=%d rank %d", k, i)
		}
	}
}

func TestFindNeighbors_Errors(t *testing.T) {
	ref := build(t, []float64{0, 0})

	_, err := FindNeighbors(vector.Vector{0, 0, 0}, ref, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, index.ErrInvalidQuery))
	var invalid *index.InvalidQueryError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 3, invalid.QueryDim)
	assert.Equal(t, 2, invalid.IndexDim)

	_, err = FindNeighbors(vector.Vector{0, 0}, ref, 0)
	assert.ErrorIs(t, err, index.ErrInvalidK)

	_, err = FindNeighbors(vector.Vector{0, 0}, nil, 1)
	assert.ErrorIs(t, err, index.ErrEmptyIndex)
}

// TestFindNeighbors_MatchesFullSort compares the heap selection against a
// stable sort of all distances on random data with many duplicate points.
func TestFindNeighbors_MatchesFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const size, dim = 300, 4
	vectors := make([][]float64, size)
	for i := range vectors {
		v := make([]float64, dim)
		for j := range v {
			v[j] = float64(rng.Intn(3))
		}
		vectors[i] = v
	}
	ref := build(t, vectors...)

	for q := 0; q < 20; q++ {
		query := make(vector.Vector, dim)
		for j := range query {
			query[j] = float64(rng.Intn(3))
		}
		type scored struct {
			position int
			distance float64
		}
		all := make([]scored, size)
		for i, ex := range ref.Examples() {
			d, err := vector.SquaredL2(query, ex.Vector)
			require.NoError(t, err)
			all[i] = scored{position: i, distance: d}
		}
		sort.SliceStable(all, func(a, b int) bool { return all[a].distance < all[b].distance })

		for _, k := range []int{1, 5, 17, size} {
			actual, err := FindNeighbors(query, ref, k)
			require.NoError(t, err)
			require.Len(t, actual, k)
			for i := range actual {
				assert.Equal(t, all[i].position, actual[i].Example.Position)
				assert.Equal(t, all[i].distance, actual[i].Distance)
				if i > 0 {
					assert.LessOrEqual(t, actual[i-1].Distance, actual[i].Distance)
				}
			}
		}
	}
}

func TestNew(t *testing.T) {
	ranker, err := New(vector.SquaredEuclidean)
	require.NoError(t, err)
	ref := build(t, []float64{3, 4})
	actual, err := ranker.Neighbors(vector.Vector{0, 0}, ref, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{25}, actual.Distances())

	_, err = New("cosine")
	assert.EqualError(t, err, `bruteforce: unsupported metric "cosine"`)

	var zero Ranker
	actual, err = zero.Neighbors(vector.Vector{0, 0}, ref, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{25}, actual.Distances())
}
