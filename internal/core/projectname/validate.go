// Package projectname validates the free-text project name of a configuration.
// It is independent of the compatibility engine and has no side effects.
package projectname

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest accepted project name, in characters.
const MaxLength = 255

const invalidChars = `<>:"|?*`

var reserved = []string{"node_modules", "favicon.ico"}

var (
	ErrEmpty        = errors.New("project name cannot be empty")
	ErrTooLong      = fmt.Errorf("project name must be at most %d characters", MaxLength)
	ErrInvalidChars = errors.New("project name contains invalid characters")
	ErrInvalidStart = errors.New("project name cannot start with a dot or hyphen")
	ErrReserved     = errors.New("project name is reserved")
)

// Validate returns nil for an acceptable name, otherwise an error wrapping one
// of the Err* reasons. "." means the current directory and is always valid.
func Validate(name string) error {
	if name == "." {
		return nil
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmpty
	}
	if utf8.RuneCountInString(name) > MaxLength {
		return ErrTooLong
	}
	if i := strings.IndexAny(name, invalidChars); i >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidChars, name[i:i+1])
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return ErrInvalidStart
	}
	for _, r := range reserved {
		if strings.EqualFold(name, r) {
			return fmt.Errorf("%w: %s", ErrReserved, r)
		}
	}
	return nil
}
