package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pathknn/engine"
	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/index/bruteforce"
	"github.com/viant/pathknn/knn"
	"github.com/viant/pathknn/vector"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s, err := NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	return s
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)) }

func TestSQLiteStore_References(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.AddReferences(ctx, []index.Record{
		{Label: 0, Embedding: []any{0.0, 0.0}},
		{Label: 1, Embedding: nil},
		{Label: 2, Embedding: []any{10.0, 10.0}},
	}))

	records, err := s.LoadReferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, []index.Record{
		{Label: 0, Embedding: vector.Vector{0, 0}},
		{Label: 1, Embedding: nil},
		{Label: 2, Embedding: vector.Vector{10, 10}},
	}, records)

	ref, err := index.Build(records, index.WithLogger(discard()))
	require.NoError(t, err)
	assert.Equal(t, 2, ref.Size())
	require.Len(t, ref.Dropped(), 1)
	assert.Equal(t, 1, ref.Dropped()[0].Position)
}

func TestSQLiteStore_Nearest(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	records := []index.Record{
		{Label: 0, Embedding: []float64{1, 0}},
		{Label: 1, Embedding: []float64{0, 1}},
		{Label: 2, Embedding: []float64{5, 5}},
		{Label: 3, Embedding: []float64{-1, 0}},
		{Label: 4, Embedding: []float64{1, 2, 3}},
	}
	require.NoError(t, s.AddReferences(ctx, records))

	matches, err := s.Nearest(ctx, vector.Vector{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []Match{{Label: 0, Distance: 1}, {Label: 1, Distance: 1}, {Label: 3, Distance: 1}}, matches)

	// SQL ranking agrees with the in-memory ranker over the same rows.
	ref, err := index.Build(records[:4], index.WithLogger(discard()))
	require.NoError(t, err)
	query := vector.Vector{0.5, 3}
	neighbors, err := bruteforce.FindNeighbors(query, ref, 4)
	require.NoError(t, err)
	matches, err = s.Nearest(ctx, query, 4)
	require.NoError(t, err)
	require.Len(t, matches, 4)
	for i := range matches {
		assert.Equal(t, neighbors[i].Example.Label, matches[i].Label)
		assert.InDelta(t, neighbors[i].Distance, matches[i].Distance, 1e-12)
	}

	_, err = s.Nearest(ctx, query, 0)
	assert.ErrorIs(t, err, index.ErrInvalidK)
}

func TestSQLiteStore_Results(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	results := []knn.Result{
		{Position: 0, Confidences: knn.Confidences{0: 0.6, 3: 0.4}},
		{Position: 1, Err: &knn.ClassificationError{Position: 1, Err: errors.New("vector: invalid record 1: embedding is missing")}},
		{Position: 2, Confidences: knn.Confidences{1: 1}},
	}
	require.NoError(t, s.SaveResults(ctx, "run-1", results))
	require.NoError(t, s.SaveResults(ctx, "run-2", results[:1]))

	loaded, err := s.LoadResults(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, results[0].Confidences, loaded[0].Confidences)
	assert.Equal(t, results[2].Confidences, loaded[2].Confidences)
	assert.EqualError(t, loaded[1].Err, results[1].Err.Error())

	// saving again replaces the run
	require.NoError(t, s.SaveResults(ctx, "run-1", results[2:]))
	loaded, err = s.LoadResults(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded[0].Position)

	loaded, err = s.LoadResults(ctx, "run-2")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	assert.Error(t, s.SaveResults(ctx, "", results))
}

func TestNewSQLiteStore_NilDB(t *testing.T) {
	_, err := NewSQLiteStore(context.Background(), nil)
	assert.EqualError(t, err, "store: db is nil")
}
