// Package faults defines the structured error taxonomy for the autofix engine.
// This is part of the Functional Core - error values are plain data with a
// code, a message, and the entity ids they concern.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

// Code categorizes engine errors.
type Code string

const (
	// CodeValidation indicates unknown, foreign, or already-fixed violation
	// ids, or malformed request options. The batch was not attempted.
	CodeValidation Code = "VALIDATION"

	// CodeUnsupportedFix indicates no catalog handler exists for a
	// violation's (category, type) pair.
	CodeUnsupportedFix Code = "UNSUPPORTED_FIX"

	// CodeConflict indicates lock contention with an in-flight batch.
	// Nothing was mutated; the caller may retry later.
	CodeConflict Code = "CONFLICT"

	// CodeStaleState indicates a live node diverged from its previewed
	// before-state. Per-item failure only.
	CodeStaleState Code = "STALE_STATE"

	// CodeNotFound indicates the target node or record no longer exists.
	CodeNotFound Code = "NOT_FOUND"

	// CodePermission indicates the caller lacks write access to the
	// source design file.
	CodePermission Code = "PERMISSION"

	// CodeUnavailable indicates a systemic mutation-oracle failure.
	// Remaining unattempted items in a batch are short-circuited.
	CodeUnavailable Code = "UNAVAILABLE"

	// CodeInvalidState indicates an illegal history status transition.
	CodeInvalidState Code = "INVALID_STATE"

	// CodeScoreOracle indicates the score oracle failed.
	CodeScoreOracle Code = "SCORE_ORACLE"

	// CodeCanceled indicates the caller canceled the batch before this
	// item was attempted.
	CodeCanceled Code = "CANCELED"
)

// Error is a structured engine error.
type Error struct {
	Code    Code
	Message string
	IDs     []string // entity ids the error concerns (violation, node, or history ids)
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithIDs returns a copy of the error annotated with entity ids.
func (e *Error) WithIDs(ids ...string) *Error {
	clone := *e
	clone.IDs = append([]string{}, ids...)
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.IDs) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.IDs, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the fault code of err, unwrapping as needed.
// Returns an empty code for non-fault errors.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// AsFault returns the underlying *Error if err carries one.
// Non-fault errors are wrapped as UNAVAILABLE so that callers always
// have a code to report.
func AsFault(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Code: CodeUnavailable, Message: err.Error()}
}

// IsConflict reports whether err is a lock-contention fault.
func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }

// IsValidation reports whether err is a validation fault.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsUnsupportedFix reports whether err is an unsupported-fix fault.
func IsUnsupportedFix(err error) bool { return CodeOf(err) == CodeUnsupportedFix }

// IsInvalidState reports whether err is an illegal-transition fault.
func IsInvalidState(err error) bool { return CodeOf(err) == CodeInvalidState }

// IsUnavailable reports whether err is a systemic availability fault.
func IsUnavailable(err error) bool { return CodeOf(err) == CodeUnavailable }

// IsStaleState reports whether err is a stale-state fault.
func IsStaleState(err error) bool { return CodeOf(err) == CodeStaleState }
