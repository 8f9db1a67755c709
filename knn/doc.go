// Package knn turns nearest-neighbor searches into label confidence
// distributions. Aggregate converts one neighborhood into confidences;
// Classifier runs a batch of queries against a shared reference index with a
// bounded worker pool and returns one Result per query, in input order.
package knn
