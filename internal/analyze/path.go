package analyze

import (
	"strings"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "Order" for a type
//   - "Order.Items" for a field
//   - "Order.Meta" for a promoted field, which keeps the outer type as root
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Root returns the type name the path starts from.
func (p *TypePath) Root() string {
	if len(p.parts) == 0 {
		return ""
	}

	return p.parts[0]
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}
