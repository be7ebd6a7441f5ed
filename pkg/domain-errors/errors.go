// Package domainerrors defines the typed error taxonomy used across the
// gateway. Services return these so transports can map them to responses
// without inspecting raw infrastructure errors.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers. Codes are coarse on purpose:
// they carry remediation semantics, not diagnostics.
type Code string

const (
	// CodeValidation marks malformed input shape (bad token payload,
	// missing header). Caller-fixable.
	CodeValidation Code = "validation_failed"
	// CodeBadRequest marks a structurally invalid request.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks a field-level input failure.
	CodeInvalidInput Code = "invalid_input"
	// CodeUnauthorized marks a missing or unverifiable credential.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks a well-formed but unauthorized request (bad
	// signature, revoked token, insufficient privilege). Not fixable
	// without a new credential.
	CodeForbidden Code = "forbidden"
	// CodeNotFound marks an absent entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a state conflict with an existing entity.
	CodeConflict Code = "conflict"
	// CodeTimeout marks a cancelled or deadline-exceeded operation.
	CodeTimeout Code = "timeout"
	// CodeInvariantViolation marks a broken internal invariant.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks an infrastructure failure. Always fail-closed.
	CodeInternal Code = "internal_error"
)

// Error is a domain error with a classification code, a safe human-readable
// message, and an optional wrapped cause. The cause never reaches callers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a domain error with the given code and safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and safe message to an underlying error. The cause is
// preserved for logging and errors.Is/As, not for caller display.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for test readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors so unknown failures stay fail-closed.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the safe message from err. Unclassified errors yield a
// generic message so infrastructure detail never leaks to callers.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
