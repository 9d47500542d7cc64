package schema

import (
	"fmt"

	"entity-extractor/internal/descriptor"
	"entity-extractor/internal/diagnostic"
)

// Validate checks a schema file for structural problems. Errors make the
// file unusable, warnings point at data the extractor will ignore.
func Validate(f *File) diagnostic.Diagnostics {
	res := diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddWarning("unknown_version", fmt.Sprintf("unknown schema version %q", f.Version), "", "")
	}

	seen := make(map[string]int)

	for i := range f.Types {
		d := &f.Types[i]

		if d.Name == "" {
			res.AddError("missing_type_name", fmt.Sprintf("type #%d has no name", i+1), "", "")
			continue
		}

		if !d.Kind.IsValid() {
			res.AddError("unknown_kind", fmt.Sprintf("unknown kind %q", d.Kind), d.Name, "")
			continue
		}

		if first, ok := seen[d.Name]; ok {
			res.AddWarning("duplicate_type",
				fmt.Sprintf("type is already declared as #%d; the first declaration wins", first+1), d.Name, "")
		} else {
			seen[d.Name] = i
		}

		validateType(&res, d)
	}

	return res
}

func validateType(res *diagnostic.Diagnostics, d *descriptor.TypeDescriptor) {
	if d.IsEnum() {
		if len(d.Properties) > 0 {
			res.AddWarning("enum_has_properties", "properties of an enum are ignored", d.Name, "")
		}

		if d.BaseTypeName != "" {
			res.AddWarning("enum_has_base", "base type of an enum is ignored", d.Name, "")
		}

		return
	}

	if len(d.MemberNames) > 0 {
		res.AddWarning("class_has_members", "members of a class are ignored", d.Name, "")
	}

	for _, p := range d.Properties {
		path := d.Name + "." + p.Name

		switch {
		case p.Name == "":
			res.AddError("missing_property_name", "property has no name", d.Name, path)
		case p.DeclaredTypeName == "":
			res.AddWarning("missing_property_type", "property has no type", d.Name, path)
		}

		if p.IsCollection && p.ElementTypeName == "" {
			res.AddWarning("missing_element_type", "collection property has no element type", d.Name, path)
		}

		if !p.IsCollection && p.ElementTypeName != "" {
			res.AddWarning("element_without_collection", "element type of a non-collection is ignored", d.Name, path)
		}
	}
}
