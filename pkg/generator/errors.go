package generator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-profilegen/pkg/inject"
)

// ErrInvalidKey is returned by Split for keys outside [a-zA-Z0-9_-]+.
var ErrInvalidKey = errors.New("generator: invalid key")

// Role names what a file is used for.
type Role string

const (
	RoleTemplate Role = "template"
	RoleContent  Role = "content"
	RoleBundle   Role = "bundle"
)

// MissingFileError reports a required input that does not exist. It unwraps
// to the underlying fs.ErrNotExist error.
type MissingFileError struct {
	Role   Role
	Locale inject.Locale
	Path   string
	Err    error
}

func (e *MissingFileError) Error() string {
	if e.Locale != "" {
		return fmt.Sprintf("generator: %s %s file does not exist: %s", e.Locale, e.Role, e.Path)
	}
	return fmt.Sprintf("generator: %s file does not exist: %s", e.Role, e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return e.Err
}
