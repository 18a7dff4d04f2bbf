// Package match holds the naming heuristics shared by both rule builders.
//
// Key functions:
//   - PropertyID: derives the descriptive rule id from a source/target path
//   - FieldID: composes prefixed, sanitized ids for schema-diff rules
//   - Classifier.LooksLikeArray: naming-convention guess for collections
//   - FindSource: three-tier (plus optional fuzzy) field name matching
//   - NormalizeName, Similarity: identifier normalization and edit-distance scoring
package match
