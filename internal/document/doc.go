// Package document holds the generic tree form of example documents.
//
// A Node is an object with ordered named fields, an array of elements, or a
// scalar. Object field order is the order of the input text; the schema-diff
// matcher depends on it for deterministic output, which is why JSON is read
// through a token stream instead of into a map.
package document
