// Package source loads reference and query embedding sets for a
// classification session. Payloads are fetched from HTTP(S) URLs (with
// retries) or local files, optionally extracted from a zip archive member,
// and decoded from a top-level JSON array of records.
package source
