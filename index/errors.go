package index

import (
	"errors"
	"fmt"

	"github.com/viant/pathknn/vector"
)

var (
	// ErrEmptyIndex is returned when no valid reference example is available.
	ErrEmptyIndex = errors.New("index: empty reference index")

	// ErrInvalidQuery is matched by every InvalidQueryError.
	ErrInvalidQuery = errors.New("index: invalid query")

	// ErrInvalidK is returned for a non-positive neighbor count.
	ErrInvalidK = errors.New("index: k must be greater than 0")
)

// EmptyIndexError reports that building a Reference left no valid examples.
type EmptyIndexError struct {
	Records int
	Dropped int
}

func (e *EmptyIndexError) Error() string {
	return fmt.Sprintf("index: empty reference index: %d records, %d dropped", e.Records, e.Dropped)
}

func (e *EmptyIndexError) Is(target error) bool { return target == ErrEmptyIndex }

// InvalidQueryError reports a query whose dimensionality differs from the
// reference index.
type InvalidQueryError struct {
	QueryDim int
	IndexDim int
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("index: invalid query: query dim %d != index dim %d", e.QueryDim, e.IndexDim)
}

// Is matches ErrInvalidQuery and vector.ErrDimensionMismatch.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery || target == vector.ErrDimensionMismatch
}
