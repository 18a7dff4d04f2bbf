// Package schemadiff infers conversion rules by pairing the fields of an
// example target document with the fields of an example source document.
//
// Target fields drive the output: each one becomes a rule, matched to a
// source field by exact, case-insensitive or substring name comparison
// (optionally by edit distance), or emitted as an "_UNMAPPED" placeholder.
// Describe documents a single document's structure the same way.
package schemadiff
