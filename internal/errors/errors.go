// Package errors provides centralized error definitions for debatemebro.
//
// The debate core has exactly one class of fallible operation: validating
// static configuration (the phase catalog and the content plan) when a
// controller is built or a session starts. Everything else on the public
// surface degrades to a no-op; a session that stopped advancing reports why
// through Session.Err with the session sentinels below.
//
// # Usage
//
// Creating errors:
//
//	ce := errors.NewConfigError("catalog", errors.ErrCatalogInvalid)
//	ce.Addf("duplicate phase id %q", "opening")
//	if err := ce.ErrOrNil(); err != nil { ... }
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrCatalogInvalid) { ... }
//	if errors.IsConfigError(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration sentinel errors
var (
	// ErrCatalogInvalid indicates a malformed phase catalog.
	ErrCatalogInvalid = New("phase catalog is invalid")
	// ErrPlanInvalid indicates a content plan that does not fit the catalog.
	ErrPlanInvalid = New("content plan is invalid")
	// ErrConfigInvalid indicates invalid runtime configuration values.
	ErrConfigInvalid = New("configuration is invalid")
)

// Content sentinel errors
var (
	// ErrContentNotFound indicates that no plan exists for the requested topic.
	ErrContentNotFound = New("content not found")
	// ErrUnknownFormat indicates an unsupported file or export format.
	ErrUnknownFormat = New("unknown format")
	// ErrCatalogChanged indicates a reloaded plan file whose phase catalog
	// differs from the one loaded at startup.
	ErrCatalogChanged = New("phase catalog changed")
)

// Session sentinel errors
var (
	// ErrSessionSuperseded indicates an operation targeted a session that a
	// later start or reset has replaced.
	ErrSessionSuperseded = New("session superseded")
	// ErrResearchTimeout indicates that a session failed because not every
	// side finished research in time.
	ErrResearchTimeout = New("research timed out")
	// ErrNoSession indicates that no session is active.
	ErrNoSession = New("no active session")
	// ErrEmptyTopic indicates a session start without a topic.
	ErrEmptyTopic = New("topic is empty")
)

// -----------------------------------------------------------------------------
// ConfigError
// -----------------------------------------------------------------------------

// ConfigError aggregates every problem found while validating one piece of
// static configuration. It wraps a sentinel so callers can match with Is.
//
// Example:
//
//	err := errors.NewConfigError("plan", errors.ErrPlanInvalid)
//	err.Addf("turn %d: unknown phase %q", 3, "recap")
//	fmt.Println(err) // "plan: content plan is invalid: turn 3: unknown phase \"recap\""
type ConfigError struct {
	Scope    string
	Problems []string
	cause    error
}

// NewConfigError creates an empty ConfigError for the given scope.
func NewConfigError(scope string, cause error) *ConfigError {
	return &ConfigError{Scope: scope, cause: cause}
}

// Addf records a problem.
func (e *ConfigError) Addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Len returns the number of recorded problems.
func (e *ConfigError) Len() int {
	return len(e.Problems)
}

// ErrOrNil returns nil when no problems were recorded. This keeps callers
// from returning a typed nil pointer inside an error interface.
func (e *ConfigError) ErrOrNil() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	prefix := e.Scope
	if e.cause != nil {
		prefix = fmt.Sprintf("%s: %v", e.Scope, e.cause)
	}
	switch len(e.Problems) {
	case 0:
		return prefix
	case 1:
		return fmt.Sprintf("%s: %s", prefix, e.Problems[0])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d problems:", prefix, len(e.Problems))
	for i, p := range e.Problems {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, p)
	}
	return sb.String()
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	return e.cause
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return As(err, &ce)
}
