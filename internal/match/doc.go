// Package match provides identifier normalization and fuzzy "did you mean"
// suggestions, used to point at the closest known package when a requested
// namespace does not exist.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers and package paths
//   - Similarity: scores two names between 0 and 1
//   - Suggest: ranks candidates by similarity to a name
package match
