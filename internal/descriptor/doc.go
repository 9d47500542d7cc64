// Package descriptor defines the type descriptor contract consumed by the
// extraction engine, and the Provider interface that supplies it.
//
// Descriptors are plain data: a provider may build them from loaded Go
// packages (see package analyze), from a schema file (see package schema),
// or by hand.
//
// Key types:
//   - TypeDescriptor: one scanned class or enum
//   - Property: one declared property of a class
//   - Provider: anything that yields an ordered descriptor sequence
package descriptor
