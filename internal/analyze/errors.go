package analyze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModuleLoad matches every *ModuleLoadError.
	ErrModuleLoad = errors.New("module load failed")
	// ErrNamespaceNotFound matches every *NamespaceNotFoundError.
	ErrNamespaceNotFound = errors.New("namespace not found")
)

// ModuleLoadError is returned when the requested packages do not exist or
// cannot be loaded and type-checked.
type ModuleLoadError struct {
	Patterns []string
	Err      error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("failed to load module %s: %v", strings.Join(e.Patterns, " "), e.Err)
}

func (e *ModuleLoadError) Unwrap() []error {
	return []error{ErrModuleLoad, e.Err}
}

// NamespaceNotFoundError is returned when a namespace yields no types.
type NamespaceNotFoundError struct {
	Namespace string
	// Suggestions are the closest known package paths, best first.
	Suggestions []string
}

func (e *NamespaceNotFoundError) Error() string {
	msg := fmt.Sprintf("namespace %q not found", e.Namespace)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}

	return msg
}

func (e *NamespaceNotFoundError) Unwrap() error {
	return ErrNamespaceNotFound
}
