package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeEmbedding(t *testing.T) {
	orig := Vector{0.0, 1.5, -2.25, 3.75, 1e-300}
	b := EncodeEmbedding(orig)
	assert.Len(t, b, len(orig)*8)

	decoded, err := DecodeEmbedding(b)
	require.NoError(t, err)
	assert.Equal(t, orig, decoded)
}

func TestEncodeDecodeEmbedding_Empty(t *testing.T) {
	assert.Empty(t, EncodeEmbedding(nil))
	vec, err := DecodeEmbedding(nil)
	require.NoError(t, err)
	assert.Empty(t, vec)
}

func TestDecodeEmbedding_BadLength(t *testing.T) {
	_, err := DecodeEmbedding([]byte{1, 2, 3})
	assert.EqualError(t, err, "vector: invalid embedding blob length 3 (not multiple of 8)")
}
