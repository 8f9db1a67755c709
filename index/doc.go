// Package index holds the immutable reference set searched by every query of
// a classification session, and the abstraction for kNN searchers over it.
// The brute-force searcher lives in the bruteforce subpackage.
package index
