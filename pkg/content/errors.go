package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMapping is returned when a document's root is not a mapping.
	ErrNotMapping = errors.New("content: document root must be a mapping")
	// ErrUnsupportedKey is returned for mapping keys that cannot be written as
	// object literal keys (sequences or mappings used as keys).
	ErrUnsupportedKey = errors.New("content: unsupported mapping key")
)

// ParseError attributes a YAML failure to the document it came from.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("content: parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
