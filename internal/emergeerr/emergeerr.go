// Package emergeerr provides structured error handling for the emerge
// static-analysis engine.
//
// It defines Error, a type that carries what went wrong, why, and how
// to recover, tagged with one of the error kinds from the engine's
// error taxonomy. Parse and metric errors are recorded as statistics
// counters and never surface as an Error; filesystem, configuration,
// and export errors propagate as *Error values.
package emergeerr

import "fmt"

// Kind classifies an Error by where it originates in the pipeline.
type Kind int

const (
	// KindConfiguration covers invalid or missing configuration:
	// empty analyses list, non-string required field, bad metric token.
	KindConfiguration Kind = iota
	// KindFilesystem covers a missing source or export directory. Fatal
	// to the analysis that hit it.
	KindFilesystem
	// KindExport covers a failure raised by an exporter.
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindFilesystem:
		return "filesystem"
	case KindExport:
		return "export"
	default:
		return "unknown"
	}
}

// Error represents a structured engine error.
//
// Message describes what went wrong, Cause explains why, and Fix
// suggests a remedy. Err optionally wraps the underlying error.
type Error struct {
	Kind    Kind
	Message string
	Cause   string
	Fix     string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap enables errors.Is/errors.As across the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfiguration builds a KindConfiguration error.
func NewConfiguration(msg, cause, fix string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Cause: cause, Fix: fix}
}

// NewFilesystem builds a KindFilesystem error.
func NewFilesystem(msg, cause, fix string, err error) *Error {
	return &Error{Kind: KindFilesystem, Message: msg, Cause: cause, Fix: fix, Err: err}
}

// NewExport builds a KindExport error.
func NewExport(msg, cause string, err error) *Error {
	return &Error{Kind: KindExport, Message: msg, Cause: cause, Err: err}
}

// Format renders the error for plain-text display. No color or other
// terminal formatting is applied — the engine carries no logging
// formatting/color/progress dependency.
func (e *Error) Format() string {
	out := "Error: " + e.Message + "\n"
	if e.Cause != "" {
		out += "Cause: " + e.Cause + "\n"
	}
	if e.Fix != "" {
		out += "Fix:   " + e.Fix + "\n"
	}
	return out
}
