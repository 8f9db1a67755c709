// Package bruteforce provides the exact kNN searcher: every query is scored
// against every reference example and the k closest are kept in a bounded
// heap. Ties on distance are resolved by insertion order, so results are
// deterministic.
package bruteforce
