package inject

import "errors"

var (
	// ErrUnknownLocale is returned when a payload is keyed by a locale that has
	// no marker definition.
	ErrUnknownLocale = errors.New("inject: unknown locale")
	// ErrPlaceholderNotFound is returned in strict mode when a payload was
	// supplied but the template has no marker for its locale.
	ErrPlaceholderNotFound = errors.New("inject: placeholder not found")
	// ErrOverlappingRegions guards against marker definitions that match the
	// same bytes of a template.
	ErrOverlappingRegions = errors.New("inject: placeholder regions overlap")
)
