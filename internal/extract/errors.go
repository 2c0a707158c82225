package extract

import (
	"errors"
	"fmt"
)

// ErrFormatUnrecognized is returned when auto-detection finds no registered
// format matching the leading bytes of the input.
var ErrFormatUnrecognized = errors.New("no registered archive format matches the input")

// UnsupportedFormatError is returned when a format name is not registered.
type UnsupportedFormatError struct {
	Name      string   // the requested format
	Available []string // registered formats
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unsupported archive format %q: no formats registered", e.Name)
	}
	return fmt.Sprintf("unsupported archive format %q (available: %v)", e.Name, e.Available)
}

// FormatError wraps a failure to build the decode stack for a stream. By the
// time it surfaces, the raw input stream has already been closed.
type FormatError struct {
	Format string // the detected or requested format, empty if detection itself failed
	Err    error
}

func (e *FormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("archive detection failed: %v", e.Err)
	}
	return fmt.Sprintf("failed to open %s archive: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ValidationError reports invalid extraction arguments. It is raised before
// any entry is read.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
