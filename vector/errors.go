package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord is matched by every validation failure.
	ErrInvalidRecord = errors.New("vector: invalid record")

	// ErrDimensionMismatch is matched by every dimensionality conflict.
	ErrDimensionMismatch = errors.New("vector: dimension mismatch")
)

// InvalidRecordError reports a raw record that could not be turned into a
// Vector. Position is the record's index within its source batch, or -1 when
// the caller did not supply one.
type InvalidRecordError struct {
	Position int
	Reason   string
	Err      error
}

func (e *InvalidRecordError) Error() string {
	if e.Position >= 0 {
		if e.Err != nil {
			return fmt.Sprintf("vector: invalid record %d: %s: %v", e.Position, e.Reason, e.Err)
		}
		return fmt.Sprintf("vector: invalid record %d: %s", e.Position, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("vector: invalid record: %s: %v", e.Reason, e.Err)
	}
	return "vector: invalid record: " + e.Reason
}

// Is makes every InvalidRecordError match ErrInvalidRecord.
func (e *InvalidRecordError) Is(target error) bool { return target == ErrInvalidRecord }

func (e *InvalidRecordError) Unwrap() error { return e.Err }

// DimensionMismatchError reports two dimensionalities that were required to
// be equal.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector: dimension mismatch: %d vs %d", e.Got, e.Want)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }
