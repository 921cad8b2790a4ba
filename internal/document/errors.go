package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the path does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnsupportedFormat is returned for extensions without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrUnreadable is returned when the file exists but cannot be decoded.
	ErrUnreadable = errors.New("document is unreadable")
)

// LoadError describes a failed load. Err wraps one of the sentinel errors.
type LoadError struct {
	Path   string
	Format string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("loading %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func unreadable(cause error) error {
	return fmt.Errorf("%w: %v", ErrUnreadable, cause)
}
