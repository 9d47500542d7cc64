package analyze

import (
	"context"

	"entity-extractor/internal/descriptor"
)

// ModuleProvider provides the descriptors of every package matched by
// Patterns.
type ModuleProvider struct {
	Analyzer *Analyzer
	Patterns []string
}

// Descriptors implements descriptor.Provider.
func (p ModuleProvider) Descriptors(ctx context.Context) ([]descriptor.TypeDescriptor, error) {
	return orNew(p.Analyzer).LoadModule(ctx, p.Patterns...)
}

// NamespaceProvider provides the descriptors of the package whose import
// path is Namespace, searched among the packages matched by Patterns and
// their imports.
type NamespaceProvider struct {
	Analyzer  *Analyzer
	Namespace string
	Patterns  []string
}

// Descriptors implements descriptor.Provider.
func (p NamespaceProvider) Descriptors(ctx context.Context) ([]descriptor.TypeDescriptor, error) {
	return orNew(p.Analyzer).LoadNamespace(ctx, p.Namespace, p.Patterns...)
}

// orNew returns a, or a default Analyzer when a is nil.
func orNew(a *Analyzer) *Analyzer {
	if a == nil {
		return NewAnalyzer()
	}

	return a
}

var (
	_ descriptor.Provider = ModuleProvider{}
	_ descriptor.Provider = NamespaceProvider{}
)
