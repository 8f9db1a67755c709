package source

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is matched by every terminal fetch failure.
	ErrNoData = errors.New("source: no data available")

	// ErrNotArray is returned when a payload is not a top-level JSON array.
	ErrNotArray = errors.New("source: payload is not a JSON array")
)

// StatusError reports an unsuccessful HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source: failed to fetch %s: HTTP status %d", e.URL, e.StatusCode)
}

// MemberNotFoundError reports a zip archive without the requested member.
type MemberNotFoundError struct {
	Name string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("source: %s not found in the zip archive", e.Name)
}
