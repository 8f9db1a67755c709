// Package engine opens modernc.org/sqlite databases with vec_l2sq registered,
// a scalar function returning the squared Euclidean distance between two
// embeddings encoded by vector.EncodeEmbedding.
package engine
