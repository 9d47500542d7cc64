package descriptor

import (
	"context"
	"slices"
)

// Kind is the kind of a scanned type.
type Kind string

const (
	KindClass Kind = "class"
	KindEnum  Kind = "enum"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindClass || k == KindEnum
}

// rootTypeNames are the spellings of the universal root object type.
// A base type with one of these names is treated as "no base type".
var rootTypeNames = []string{"", "object", "Object", "System.Object", "any", "interface{}"}

// IsRootType reports whether name denotes the universal root object type.
func IsRootType(name string) bool {
	return slices.Contains(rootTypeNames, name)
}

// TypeDescriptor describes one scanned class or enum.
type TypeDescriptor struct {
	Kind Kind   `json:"kind" toml:"kind" yaml:"kind"`
	Name string `json:"name" toml:"name" yaml:"name"`
	// Namespace is the package path the type was found in. Informational.
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty" yaml:"namespace,omitempty"`
	// BaseTypeName is empty when the type has no base type.
	BaseTypeName string     `json:"base,omitempty"       toml:"base,omitempty"       yaml:"base,omitempty"`
	Properties   []Property `json:"properties,omitempty" toml:"properties,omitempty" yaml:"properties,omitempty"`
	// MemberNames holds enum member names in declaration order.
	MemberNames []string `json:"members,omitempty" toml:"members,omitempty" yaml:"members,omitempty"`
}

// IsClass returns true if the descriptor is a class.
func (d *TypeDescriptor) IsClass() bool {
	return d.Kind == KindClass
}

// IsEnum returns true if the descriptor is an enum.
func (d *TypeDescriptor) IsEnum() bool {
	return d.Kind == KindEnum
}

// HasBaseType returns true if the descriptor declares a base type other
// than the universal root object type.
func (d *TypeDescriptor) HasBaseType() bool {
	return !IsRootType(d.BaseTypeName)
}

// Property describes a declared property of a class.
type Property struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	// DeclaredTypeName is the simple type name with any nullable wrapper
	// already removed (see IsNullable).
	DeclaredTypeName string `json:"type"                 toml:"type"                 yaml:"type"`
	IsEnum           bool   `json:"enum,omitempty"       toml:"enum,omitempty"       yaml:"enum,omitempty"`
	IsCollection     bool   `json:"collection,omitempty" toml:"collection,omitempty" yaml:"collection,omitempty"`
	// ElementTypeName is set for single-level collections; empty when the
	// element type could not be determined.
	ElementTypeName string `json:"element,omitempty"  toml:"element,omitempty"  yaml:"element,omitempty"`
	IsNullable      bool   `json:"nullable,omitempty" toml:"nullable,omitempty" yaml:"nullable,omitempty"`
}

// Provider supplies an ordered sequence of type descriptors.
type Provider interface {
	Descriptors(ctx context.Context) ([]TypeDescriptor, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]TypeDescriptor, error)

// Descriptors calls f(ctx).
func (f ProviderFunc) Descriptors(ctx context.Context) ([]TypeDescriptor, error) {
	return f(ctx)
}

// Static is a Provider over an in-memory descriptor slice.
type Static []TypeDescriptor

// Descriptors returns the slice itself.
func (s Static) Descriptors(_ context.Context) ([]TypeDescriptor, error) {
	return s, nil
}
