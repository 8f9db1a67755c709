package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/pathknn/index"
	"github.com/viant/pathknn/knn"
	"github.com/viant/pathknn/vector"
)

// SQLiteStore persists reference embeddings and classification results.
type SQLiteStore struct {
	db *sql.DB
}

// Match is a stored reference ranked by vec_l2sq against a query.
type Match struct {
	Label    index.Label
	Distance float64
}

// NewSQLiteStore creates a new SQLite-backed store and ensures its schema.
// The database must have been opened through engine.Open so that vec_l2sq
// is available.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// AddReferences upserts reference records keyed by label. Records whose
// embedding does not validate are stored with a NULL embedding so that the
// position is kept and the record is dropped when the index is built.
func (s *SQLiteStore) AddReferences(ctx context.Context, records []index.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO slides(position, embedding) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, record := range records {
		var blob any
		if vec, err := vector.Validate(record.Embedding, 0); err == nil {
			blob = vector.EncodeEmbedding(vec)
		}
		if _, err := stmt.ExecContext(ctx, int(record.Label), blob); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadReferences returns the stored references ordered by position. NULL
// embeddings load as nil; undecodable BLOBs load as the raw bytes. Both are
// rejected by index.Build.
func (s *SQLiteStore) LoadReferences(ctx context.Context) ([]index.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT position, embedding FROM slides ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []index.Record
	for rows.Next() {
		var (
			position int
			blob     []byte
		)
		if err := rows.Scan(&position, &blob); err != nil {
			return nil, err
		}
		record := index.Record{Label: index.Label(position)}
		if blob != nil {
			if vec, err := vector.DecodeEmbedding(blob); err == nil {
				record.Embedding = vec
			} else {
				record.Embedding = blob
			}
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Nearest ranks stored references by vec_l2sq distance to query, ties by
// position, and returns up to k of them. Rows with a NULL or mismatched
// embedding are skipped.
func (s *SQLiteStore) Nearest(ctx context.Context, query vector.Vector, k int) ([]Match, error) {
	if k <= 0 {
		return nil, index.ErrInvalidK
	}
	rows, err := s.db.QueryContext(ctx, `SELECT position, vec_l2sq(embedding, ?) AS d
FROM slides
WHERE embedding IS NOT NULL AND length(embedding) = ?
ORDER BY d, position
LIMIT ?`, vector.EncodeEmbedding(query), len(query)*8, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var match Match
		if err := rows.Scan(&match.Label, &match.Distance); err != nil {
			return nil, err
		}
		out = append(out, match)
	}
	return out, rows.Err()
}

// SaveResults replaces the results stored for run. A classified query is
// stored as one row per label; a failed query as one row carrying the error
// text.
func (s *SQLiteStore) SaveResults(ctx context.Context, run string, results []knn.Result) error {
	if run == "" {
		return fmt.Errorf("store: SaveResults called with empty run")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM classifications WHERE run = ?`, run); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO classifications(run, query, label, confidence, error) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, result := range results {
		if result.Err != nil {
			message := result.Err.Error()
			var classification *knn.ClassificationError
			if errors.As(result.Err, &classification) {
				message = classification.Err.Error()
			}
			if _, err := stmt.ExecContext(ctx, run, result.Position, nil, nil, message); err != nil {
				return err
			}
			continue
		}
		for _, entry := range result.Confidences.Labels() {
			if _, err := stmt.ExecContext(ctx, run, result.Position, int(entry.Label), entry.Confidence, nil); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// LoadResults reads the results stored for run, ordered by query position.
// Stored failures come back as *knn.ClassificationError with the original
// message.
func (s *SQLiteStore) LoadResults(ctx context.Context, run string) ([]knn.Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query, label, confidence, error FROM classifications WHERE run = ? ORDER BY query, rowid`, run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []knn.Result
	for rows.Next() {
		var (
			position   int
			label      sql.NullInt64
			confidence sql.NullFloat64
			message    sql.NullString
		)
		if err := rows.Scan(&position, &label, &confidence, &message); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].Position != position {
			out = append(out, knn.Result{Position: position})
		}
		result := &out[len(out)-1]
		if message.Valid {
			result.Err = &knn.ClassificationError{Position: position, Err: errors.New(message.String)}
			continue
		}
		if result.Confidences == nil {
			result.Confidences = knn.Confidences{}
		}
		result.Confidences[index.Label(label.Int64)] = confidence.Float64
	}
	return out, rows.Err()
}
