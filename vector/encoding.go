package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbedding encodes a vector into a BLOB representation suitable for
// storage in SQLite. The encoding is a little-endian sequence of IEEE 754
// float64 values without a length prefix; the length is derived from the
// BLOB size on decode.
func EncodeEmbedding(vec Vector) []byte {
	if len(vec) == 0 {
		return nil
	}
	b := make([]byte, len(vec)*8)
	for i, v := range vec {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

// DecodeEmbedding decodes a BLOB produced by EncodeEmbedding back into a
// vector.
func DecodeEmbedding(b []byte) (Vector, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 8)", len(b))
	}
	n := len(b) / 8
	vec := make(Vector, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return vec, nil
}
