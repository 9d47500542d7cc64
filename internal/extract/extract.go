package extract

import (
	"context"
	"fmt"

	"entity-extractor/internal/descriptor"
)

const (
	// DefaultForeignKeySuffix is the property name suffix marking a foreign key.
	DefaultForeignKeySuffix = "Id"
	// DefaultPrimaryKeyName is the default primary key property name.
	DefaultPrimaryKeyName = "Id"
)

// Options controls relationship inference.
type Options struct {
	// UseNamingHeuristics enables the foreign-key reference rule.
	UseNamingHeuristics bool
	// ForeignKeySuffix is stripped from a property name to find the
	// referenced entity. Matching is case-sensitive.
	ForeignKeySuffix string
	// PrimaryKeyName is accepted for callers that configure it, but no rule
	// reads it.
	PrimaryKeyName string
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		UseNamingHeuristics: false,
		ForeignKeySuffix:    DefaultForeignKeySuffix,
		PrimaryKeyName:      DefaultPrimaryKeyName,
	}
}

// Extract collects entities from descs and infers their relationships.
// Identical input and options always produce identical, order-stable output.
func Extract(descs []descriptor.TypeDescriptor, opts Options) *Result {
	entities, index := Collect(descs)
	rels := NewInferencer(index, opts).Infer(descs)

	if entities == nil {
		entities = []*Entity{}
	}

	if rels == nil {
		rels = []Relationship{}
	}

	return &Result{
		Entities:      entities,
		Relationships: rels,
	}
}

// FromProvider obtains descriptors from p and runs Extract over them.
func FromProvider(ctx context.Context, p descriptor.Provider, opts Options) (*Result, error) {
	descs, err := p.Descriptors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain type descriptors: %w", err)
	}

	return Extract(descs, opts), nil
}
