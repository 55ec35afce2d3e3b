package readr

import (
	"errors"
	"fmt"
)

// StreamError reports a failure to open or read an input source. It wraps
// the underlying I/O error so callers can inspect it with errors.Is.
type StreamError struct {
	// Path is the file path of the source, or "" for in-memory sources.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message naming the source.
func (e *StreamError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("reading source: %v", e.Err)
	}
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// LocaleError reports an invalid locale configuration, such as an unknown
// language code or a decimal mark that collides with the grouping mark.
type LocaleError struct {
	// Reason describes what is wrong with the configuration.
	Reason string
}

// Error returns the reason the locale was rejected.
func (e *LocaleError) Error() string {
	return "invalid locale: " + e.Reason
}

// OptionsError reports an invalid reader configuration.
type OptionsError struct {
	// Field is the option that was rejected.
	Field string
	// Message describes what is wrong with it.
	Message string
}

// Error returns a message naming the rejected option.
func (e *OptionsError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

// Common parsing errors returned by the scalar Parse helpers.
var (
	// ErrMissing indicates the value was a missing-value marker.
	ErrMissing = errors.New("value is missing")

	// ErrBadFormat indicates the value did not match the expected format.
	ErrBadFormat = errors.New("value does not match format")

	// ErrRange indicates a numeric value outside the representable range.
	ErrRange = errors.New("value out of range")
)
