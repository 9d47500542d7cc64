package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"entity-extractor/internal/descriptor"
)

// ValuesAttribute is the name of the synthetic attribute holding the member
// names of an enum entity.
const ValuesAttribute = "Values"

// RelationshipKey labels a relationship.
type RelationshipKey string

const (
	KeyInherits    RelationshipKey = "inherits"
	KeyReferences  RelationshipKey = "references"
	KeyHasChildren RelationshipKey = "has_children"
	KeyEnum        RelationshipKey = "enum"
)

// Attribute describes one attribute of an entity: either a type name
// (scalar, reference or "List<Element>" collection marker) or, for the
// Values attribute of an enum entity, the ordered member names.
type Attribute struct {
	Type   string
	Values []string
}

// IsValues returns true if the attribute holds enum member names.
func (a Attribute) IsValues() bool {
	return a.Values != nil
}

// MarshalJSON encodes a typed attribute as {"Type": name} and a values
// attribute as a plain string array.
func (a Attribute) MarshalJSON() ([]byte, error) {
	if a.IsValues() {
		return marshalJSON(a.Values)
	}

	return marshalJSON(struct {
		Type string `json:"Type"`
	}{a.Type})
}

// MarshalYAML mirrors MarshalJSON.
func (a Attribute) MarshalYAML() (interface{}, error) {
	if a.IsValues() {
		return a.Values, nil
	}

	return struct {
		Type string `yaml:"Type"`
	}{a.Type}, nil
}

// Attributes is an insertion-ordered mapping from property name to Attribute.
type Attributes = orderedmap.OrderedMap[string, Attribute]

// Entity is a named node of the output graph.
type Entity struct {
	Name       string          `json:"name"`
	Kind       descriptor.Kind `json:"kind"`
	Attributes *Attributes     `json:"attributes"`
}

// NewEntity creates an entity with no attributes.
func NewEntity(name string, kind descriptor.Kind) *Entity {
	return &Entity{
		Name:       name,
		Kind:       kind,
		Attributes: orderedmap.New[string, Attribute](),
	}
}

// Attribute returns the attribute with the given name.
func (e *Entity) Attribute(name string) (Attribute, bool) {
	return e.Attributes.Get(name)
}

// AttributeNames returns the attribute names in insertion order.
func (e *Entity) AttributeNames() []string {
	names := make([]string, 0, e.Attributes.Len())
	for pair := e.Attributes.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names
}

// Values returns the member names of an enum entity, or nil.
func (e *Entity) Values() []string {
	attr, ok := e.Attributes.Get(ValuesAttribute)
	if !ok {
		return nil
	}

	return attr.Values
}

// MarshalJSON encodes the entity keeping attribute order.
func (e *Entity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteString(`{"name":`)

	if err := enc.Encode(e.Name); err != nil {
		return nil, err
	}

	buf.WriteString(`,"kind":`)

	if err := enc.Encode(e.Kind); err != nil {
		return nil, err
	}

	buf.WriteString(`,"attributes":{`)

	for pair := e.Attributes.Oldest(); pair != nil; pair = pair.Next() {
		if pair != e.Attributes.Oldest() {
			buf.WriteByte(',')
		}

		if err := enc.Encode(pair.Key); err != nil {
			return nil, err
		}

		buf.WriteByte(':')

		if err := enc.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("failed to encode attribute %s.%s: %w", e.Name, pair.Key, err)
		}
	}

	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// MarshalYAML encodes the entity keeping attribute order.
func (e *Entity) MarshalYAML() (interface{}, error) {
	attrs := &yaml.Node{Kind: yaml.MappingNode}

	for pair := e.Attributes.Oldest(); pair != nil; pair = pair.Next() {
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("failed to encode attribute %s.%s: %w", e.Name, pair.Key, err)
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		attrs.Content = append(attrs.Content, key, value)
	}

	return struct {
		Name       string          `yaml:"name"`
		Kind       descriptor.Kind `yaml:"kind"`
		Attributes *yaml.Node      `yaml:"attributes"`
	}{e.Name, e.Kind, attrs}, nil
}

// marshalJSON is json.Marshal without HTML escaping. The enclosing encoder
// escapes marshaler output again unless it also calls SetEscapeHTML(false),
// so a plain json.Marshal still yields "List\u003cT\u003e" while
// export.Encode keeps "List<T>".
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Relationship is a directed, labeled edge between two entity names.
// Relationships have no identity beyond their three fields.
type Relationship struct {
	FromEntity string          `json:"from_entity" yaml:"from_entity"`
	ToEntity   string          `json:"to_entity"   yaml:"to_entity"`
	Key        RelationshipKey `json:"key"         yaml:"key"`
}

// String returns a human-readable representation of the relationship.
func (r Relationship) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", r.FromEntity, r.Key, r.ToEntity)
}

// EntityIndex is an insertion-ordered mapping from entity name to entity.
type EntityIndex struct {
	entities *orderedmap.OrderedMap[string, *Entity]
}

// NewEntityIndex creates an empty index.
func NewEntityIndex() *EntityIndex {
	return &EntityIndex{
		entities: orderedmap.New[string, *Entity](),
	}
}

// Add indexes e under its name. It returns false and leaves the index
// unchanged if the name is already present.
func (x *EntityIndex) Add(e *Entity) bool {
	if x.Contains(e.Name) {
		return false
	}

	x.entities.Set(e.Name, e)

	return true
}

// Get returns the entity with the given name.
func (x *EntityIndex) Get(name string) (*Entity, bool) {
	return x.entities.Get(name)
}

// Contains reports whether an entity with the given name is indexed.
func (x *EntityIndex) Contains(name string) bool {
	_, ok := x.entities.Get(name)
	return ok
}

// Len returns the number of indexed entities.
func (x *EntityIndex) Len() int {
	return x.entities.Len()
}

// Entities returns the indexed entities in insertion order.
func (x *EntityIndex) Entities() []*Entity {
	out := make([]*Entity, 0, x.entities.Len())
	for pair := x.entities.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}

// Result is the output of an extraction.
type Result struct {
	Entities      []*Entity      `json:"entities"      yaml:"entities"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// Count returns the number of relationships with the given key.
func (r *Result) Count(key RelationshipKey) int {
	n := 0

	for _, rel := range r.Relationships {
		if rel.Key == key {
			n++
		}
	}

	return n
}
