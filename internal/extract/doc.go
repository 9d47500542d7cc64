// Package extract turns type descriptors into an entity/relationship graph.
//
// Extraction runs two passes over the same descriptor sequence:
//  1. Collect: build one Entity per distinct type name (first occurrence
//     wins) and an insertion-ordered EntityIndex.
//  2. Infer: for each class descriptor apply the relationship rules against
//     the index, in property declaration order:
//     - foreign-key reference ("references"), only with naming heuristics
//     - collection navigation ("has_children")
//     - enum usage ("enum")
//     and finally inheritance ("inherits").
//
// Lookups that fail never abort a pass; they only suppress the relationship
// for that property. The package holds no global state, so concurrent
// extractions over different inputs are independent.
package extract
