package vector

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Metric names the distance metric of a search session.
type Metric string

const (
	// SquaredEuclidean is the sum of squared per-dimension differences. It
	// preserves the ordering of Euclidean distance without the square root.
	SquaredEuclidean Metric = "squared_euclidean"

	// DefaultMetric is used when no metric is configured.
	DefaultMetric = SquaredEuclidean
)

// DistanceFunc computes the distance between two vectors.
type DistanceFunc func(a, b Vector) (float64, error)

// ParseMetric resolves a configured metric name. The empty string selects
// DefaultMetric; "l2sq" is accepted as an alias.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(SquaredEuclidean), "l2sq", "squared-euclidean":
		return SquaredEuclidean, nil
	default:
		return "", fmt.Errorf("vector: unsupported metric %q", name)
	}
}

// Function resolves the callable distance implementation, or nil for an
// unknown metric.
func (m Metric) Function() DistanceFunc {
	switch m {
	case SquaredEuclidean, "":
		return SquaredL2
	default:
		return nil
	}
}

// SquaredL2 computes the squared Euclidean distance between two vectors. It
// returns a *DimensionMismatchError if the vectors have different lengths.
func SquaredL2(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Want: len(a), Got: len(b)}
	}
	if len(a) == 0 {
		return 0, nil
	}
	buf := scratch.Get().(*[]float64)
	if cap(*buf) < len(a) {
		*buf = make([]float64, len(a))
	}
	diff := (*buf)[:len(a)]
	floats.SubTo(diff, a, b)
	d := floats.Dot(diff, diff)
	scratch.Put(buf)
	return d, nil
}

// scratch holds difference buffers reused across SquaredL2 calls.
var scratch = sync.Pool{New: func() any { return new([]float64) }}
