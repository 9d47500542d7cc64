// Package diagnostic provides structured warnings, errors, and infos
// reported while turning source types into type descriptors.
//
// Key capabilities:
//   - Skipped or unsupported types reported by the Go package loader
//   - Opaque field types rendered by their type string
//   - Schema file validation errors
package diagnostic
