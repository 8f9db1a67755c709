// Package vector defines the embedding vector model used by this project. It
// includes:
//   - Vector, the validated fixed-dimension embedding
//   - Validator, which turns raw decoded input into vectors
//   - the squared Euclidean distance engine and Metric names
//   - Embedding encoding (BLOB) for SQLite storage
package vector
