// Package export encodes extraction results as JSON, YAML, MessagePack or a
// Mermaid erDiagram.
//
// Every format keeps entities, attributes and relationships in the order
// the extractor produced them.
package export
