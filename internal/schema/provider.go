package schema

import (
	"context"
	"fmt"
	"log/slog"

	"entity-extractor/internal/descriptor"
)

// Provider provides the descriptors of a schema file.
type Provider struct {
	Path   string
	Logger *slog.Logger
}

// Descriptors implements descriptor.Provider. It fails if the file does not
// validate; warnings are logged.
func (p Provider) Descriptors(ctx context.Context) ([]descriptor.TypeDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := LoadFile(p.Path)
	if err != nil {
		return nil, err
	}

	diags := Validate(f)

	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, w := range diags.Warnings {
		logger.Warn(w.Message, "code", w.Code, "type", w.TypeName, "path", w.Path)
	}

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", p.Path, err)
	}

	logger.Debug("loaded schema file", "path", p.Path, "types", len(f.Types))

	return f.Types, nil
}

var _ descriptor.Provider = Provider{}
