package vector

import (
	"encoding/json"
	"fmt"
	"math"
)

// Validate converts raw into a Vector. When expectedDim is positive the
// result must have exactly that many components; zero or a negative value
// accepts any non-empty length.
//
// Accepted shapes are the ones produced by JSON decoders and by callers that
// already hold numbers: Vector, []float64, []float32, []int and []any whose
// elements are numeric (float64, float32, int, int64, json.Number).
func Validate(raw any, expectedDim int) (Vector, error) {
	return validate(-1, raw, expectedDim)
}

// Validator validates a sequence of records that must share one
// dimensionality. The dimension is fixed by the first record that validates,
// unless it was preset with NewValidator.
//
// A Validator is not safe for concurrent use.
type Validator struct {
	dim int
}

// NewValidator creates a Validator; dim <= 0 leaves the dimension to be
// established by the first valid record.
func NewValidator(dim int) *Validator {
	if dim < 0 {
		dim = 0
	}
	return &Validator{dim: dim}
}

// Dim returns the established dimension, or 0 if none yet.
func (v *Validator) Dim() int { return v.dim }

// Validate checks the record at position. Failures are returned as
// *InvalidRecordError and do not change the established dimension.
func (v *Validator) Validate(position int, raw any) (Vector, error) {
	vec, err := validate(position, raw, v.dim)
	if err != nil {
		return nil, err
	}
	if v.dim == 0 {
		v.dim = len(vec)
	}
	return vec, nil
}

func validate(position int, raw any, expectedDim int) (Vector, error) {
	invalid := func(reason string, err error) error {
		return &InvalidRecordError{Position: position, Reason: reason, Err: err}
	}
	if raw == nil {
		return nil, invalid("embedding is missing", nil)
	}
	var (
		out Vector
		err error
	)
	switch actual := raw.(type) {
	case Vector:
		out, err = fromFloat64s(actual)
	case []float64:
		out, err = fromFloat64s(actual)
	case []float32:
		out = make(Vector, len(actual))
		for i, f := range actual {
			out[i] = float64(f)
		}
		err = checkFinite(out)
	case []int:
		out = make(Vector, len(actual))
		for i, n := range actual {
			out[i] = float64(n)
		}
	case []any:
		out = make(Vector, len(actual))
		for i, item := range actual {
			f, ok := asFloat(item)
			if !ok {
				return nil, invalid(fmt.Sprintf("component %d has non-numeric type %T", i, item), nil)
			}
			out[i] = f
		}
		err = checkFinite(out)
	default:
		return nil, invalid(fmt.Sprintf("unsupported embedding type %T", raw), nil)
	}
	if err != nil {
		return nil, invalid("embedding has non-finite values", err)
	}
	if len(out) == 0 {
		return nil, invalid("embedding is empty", nil)
	}
	if expectedDim > 0 && len(out) != expectedDim {
		return nil, invalid("embedding has wrong length", &DimensionMismatchError{Want: expectedDim, Got: len(out)})
	}
	return out, nil
}

func fromFloat64s(values []float64) (Vector, error) {
	out := make(Vector, len(values))
	copy(out, values)
	return out, checkFinite(out)
}

func checkFinite(v Vector) error {
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("component %d is %v", i, f)
		}
	}
	return nil
}

func asFloat(item any) (float64, bool) {
	switch n := item.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			// out-of-range literals parse to ±Inf, reported by checkFinite
			return f, math.IsInf(f, 0)
		}
		return f, true
	default:
		return 0, false
	}
}
