package stemplate

import (
	"errors"
	"fmt"
)

// Sentinel errors for template operations.
var (
	// ErrConfig is returned by New when the engine options are invalid.
	ErrConfig = errors.New("invalid engine configuration")

	// ErrNoLoader indicates an include placeholder was hit with no loader configured.
	ErrNoLoader = errors.New("no include loader configured")

	// ErrExtension indicates an include filename does not end in the required extension.
	ErrExtension = errors.New("include filename must end in .inc")

	// ErrVariable is returned when a required variable is missing.
	ErrVariable = errors.New("required variable missing")
)

// IncludeError wraps a failed include with the filename that was requested.
// Includes are the one hard failure during expansion: every other
// unresolvable placeholder passes through as literal text, but a missing
// include file is a broken reference to external content and aborts the
// render.
type IncludeError struct {
	Name string // Filename as written in the placeholder
	Err  error  // Underlying error (ErrNoLoader, ErrExtension, or a loader error)
}

// Error implements the error interface.
func (e *IncludeError) Error() string {
	return fmt.Sprintf("include %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *IncludeError) Unwrap() error {
	return e.Err
}
