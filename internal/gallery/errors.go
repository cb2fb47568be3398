package gallery

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for missing or unusable request values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedKey is returned when a storage key has no folder separator.
	ErrMalformedKey = errors.New("malformed key")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
