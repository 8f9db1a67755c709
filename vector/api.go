package vector

// Vector is a validated embedding: a fixed-length sequence of finite values.
// Vectors handed out by Validate are owned by the caller and never aliased
// with the raw input.
type Vector []float64

// Dim returns the dimensionality of the vector.
func (v Vector) Dim() int { return len(v) }

// Clone returns a copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	return append(Vector(nil), v...)
}
