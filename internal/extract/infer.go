package extract

import (
	"slices"
	"strings"

	"entity-extractor/internal/descriptor"
)

// keyTypeNames are the declared type names a foreign-key property may have:
// a string or a 32-bit integer, in the spellings providers emit.
var keyTypeNames = []string{
	"string", "String", "System.String",
	"int", "int32", "Int32", "System.Int32",
}

// IsKeyType reports whether a declared type name qualifies for the
// foreign-key rule.
func IsKeyType(name string) bool {
	return slices.Contains(keyTypeNames, name)
}

// Inferencer applies the relationship rules to class descriptors against
// an entity index built by Collect.
type Inferencer struct {
	index *EntityIndex
	opts  Options
}

// NewInferencer creates an Inferencer reading from index.
func NewInferencer(index *EntityIndex, opts Options) *Inferencer {
	return &Inferencer{
		index: index,
		opts:  opts,
	}
}

// Infer returns the relationships of all class descriptors in descs, in
// descriptor order. Enum descriptors are never relationship sources.
func (inf *Inferencer) Infer(descs []descriptor.TypeDescriptor) []Relationship {
	var rels []Relationship

	for i := range descs {
		if !descs[i].IsClass() {
			continue
		}

		rels = inf.inferClass(&descs[i], rels)
	}

	return rels
}

// inferClass appends the relationships of a single class descriptor.
func (inf *Inferencer) inferClass(d *descriptor.TypeDescriptor, rels []Relationship) []Relationship {
	for _, prop := range d.Properties {
		if rel, ok := inf.foreignKey(d, prop); ok {
			rels = append(rels, rel)
		}

		if rel, ok := inf.hasChildren(d, prop); ok {
			rels = append(rels, rel)
		}

		if rel, ok := inf.enumUsage(d, prop); ok {
			rels = append(rels, rel)
		}
	}

	if rel, ok := inheritance(d); ok {
		rels = append(rels, rel)
	}

	return rels
}

// foreignKey matches properties like "CustomerId" against an entity named
// "Customer". Only active with naming heuristics enabled.
// Options.PrimaryKeyName does not take part in matching.
func (inf *Inferencer) foreignKey(d *descriptor.TypeDescriptor, p descriptor.Property) (Relationship, bool) {
	if !inf.opts.UseNamingHeuristics {
		return Relationship{}, false
	}

	if p.IsCollection || p.IsNullable || !IsKeyType(p.DeclaredTypeName) {
		return Relationship{}, false
	}

	candidate, found := strings.CutSuffix(p.Name, inf.opts.ForeignKeySuffix)
	if !found || candidate == "" || !inf.index.Contains(candidate) {
		return Relationship{}, false
	}

	return Relationship{FromEntity: d.Name, ToEntity: candidate, Key: KeyReferences}, true
}

// hasChildren matches collection properties whose element is a known entity.
func (inf *Inferencer) hasChildren(d *descriptor.TypeDescriptor, p descriptor.Property) (Relationship, bool) {
	if !p.IsCollection || p.ElementTypeName == "" || !inf.index.Contains(p.ElementTypeName) {
		return Relationship{}, false
	}

	return Relationship{FromEntity: d.Name, ToEntity: p.ElementTypeName, Key: KeyHasChildren}, true
}

// enumUsage matches enum-typed properties whose enum is a known entity.
func (inf *Inferencer) enumUsage(d *descriptor.TypeDescriptor, p descriptor.Property) (Relationship, bool) {
	if !p.IsEnum || p.IsNullable || p.IsCollection || !inf.index.Contains(p.DeclaredTypeName) {
		return Relationship{}, false
	}

	return Relationship{FromEntity: d.Name, ToEntity: p.DeclaredTypeName, Key: KeyEnum}, true
}

// inheritance links a base type to the derived class. The base is always
// FromEntity and need not be a known entity.
func inheritance(d *descriptor.TypeDescriptor) (Relationship, bool) {
	if !d.HasBaseType() {
		return Relationship{}, false
	}

	return Relationship{FromEntity: d.BaseTypeName, ToEntity: d.Name, Key: KeyInherits}, true
}
