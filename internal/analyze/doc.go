// Package analyze describes Go packages as type descriptors.
//
// It uses golang.org/x/tools/go/packages with go/types to load packages and
// reduces their exported named types:
//   - a struct becomes a class; its first exported embedded struct is the
//     base type and embedded fields are promoted in place
//   - a named integer or string type with exported constants of that type
//     becomes an enum whose members are the constant names
//   - a pointer field is nullable, a slice of a named or basic type is a
//     collection of that type
//
// LoadModule describes every matched package, LoadNamespace describes one
// package reachable from the matched ones. ModuleProvider and
// NamespaceProvider adapt both to descriptor.Provider.
package analyze
