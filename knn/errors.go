package knn

import "fmt"

// ClassificationError is the per-query failure stored in Result.Err.
// Position is the query's index in the submitted batch.
type ClassificationError struct {
	Position int
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("knn: query %d: %v", e.Position, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }
