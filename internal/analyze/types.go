package analyze

import (
	"go/types"

	"entity-extractor/internal/common"
)

// TypeKind represents the shape of a field type as seen by the loader.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // named or anonymous struct
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map
	TypeKindEnum               // named basic type with constants
	TypeKindAlias              // named type wrapping something else
	TypeKindInterface          // interface
	TypeKindTypeParam          // generic type parameter
	TypeKindOther              // channels, functions, tuples
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindEnum:
		return "enum"
	case TypeKindAlias:
		return "alias"
	case TypeKindInterface:
		return "interface"
	case TypeKindTypeParam:
		return "type parameter"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// kindOf classifies t. Named types are classified by their underlying type,
// except enum-shaped named types.
func (a *Analyzer) kindOf(t types.Type) TypeKind {
	t = types.Unalias(t)

	if named, ok := t.(*types.Named); ok {
		if a.isEnum(named) {
			return TypeKindEnum
		}

		switch named.Underlying().(type) {
		case *types.Struct:
			return TypeKindStruct
		case *types.Interface:
			return TypeKindInterface
		default:
			return TypeKindAlias
		}
	}

	switch t.(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Interface:
		return TypeKindInterface
	case *types.TypeParam:
		return TypeKindTypeParam
	case *types.Chan, *types.Signature, *types.Tuple:
		return TypeKindOther
	default:
		return TypeKindUnknown
	}
}

// PackageInfo holds information about a described package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []string // Names of the described types, in descriptor order
}
