// Package store keeps reference embeddings and classification results in
// SQLite. It is a source and a sink for classification sessions; the
// reference index itself is always rebuilt in memory from the loaded rows.
package store
