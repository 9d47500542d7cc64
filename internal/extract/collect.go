package extract

import (
	"entity-extractor/internal/common"
	"entity-extractor/internal/descriptor"
)

// Collect builds one entity per distinct descriptor name, in input order.
// The first descriptor with a given name wins; later descriptors with the
// same name are skipped entirely, whatever their kind.
func Collect(descs []descriptor.TypeDescriptor) ([]*Entity, *EntityIndex) {
	index := NewEntityIndex()

	var entities []*Entity

	for i := range descs {
		d := &descs[i]
		if index.Contains(d.Name) {
			continue
		}

		var entity *Entity

		switch d.Kind {
		case descriptor.KindClass:
			entity = entityFromClass(d)
		case descriptor.KindEnum:
			entity = entityFromEnum(d)
		default:
			continue
		}

		index.Add(entity)
		entities = append(entities, entity)
	}

	return entities, index
}

// entityFromClass creates an entity with one attribute per property.
// A later property with the same name overwrites the earlier value.
func entityFromClass(d *descriptor.TypeDescriptor) *Entity {
	entity := NewEntity(d.Name, descriptor.KindClass)

	for _, prop := range d.Properties {
		entity.Attributes.Set(prop.Name, Attribute{Type: attributeType(prop)})
	}

	return entity
}

// entityFromEnum creates an entity holding the enum member names.
func entityFromEnum(d *descriptor.TypeDescriptor) *Entity {
	entity := NewEntity(d.Name, descriptor.KindEnum)

	values := make([]string, len(d.MemberNames))
	copy(values, d.MemberNames)
	entity.Attributes.Set(ValuesAttribute, Attribute{Values: values})

	return entity
}

// attributeType returns the type name recorded for a property.
func attributeType(p descriptor.Property) string {
	if p.IsCollection {
		return ListType(orUnknown(p.ElementTypeName))
	}

	return orUnknown(p.DeclaredTypeName)
}

// ListType returns the collection marker for the given element type name.
func ListType(element string) string {
	return "List<" + element + ">"
}

func orUnknown(name string) string {
	if name == "" {
		return common.UnknownStr
	}

	return name
}
