package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by mutations whose target book does not exist.
	// Lookups report absence with a nil result instead.
	ErrNotFound = errors.New("book not found")

	// ErrOperationFailed hides storage failures from callers. The cause is logged
	// by the repository.
	ErrOperationFailed = errors.New("catalog operation failed")

	// ErrInvalidInput is wrapped by *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError lists the offending fields of a write input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Failed wraps ErrOperationFailed with the name of the operation.
func Failed(op string) error {
	return fmt.Errorf("%s: %w", op, ErrOperationFailed)
}
