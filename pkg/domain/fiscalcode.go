package domain

import (
	"regexp"

	dErrors "citizengw/pkg/domain-errors"
)

// FiscalCode is the canonical identifier uniquely naming a citizen.
// Invariant: once parsed it is trusted for the remainder of the request and
// never re-validated downstream.
//
// Usage: construct via ParseFiscalCode at trust boundaries; direct casting
// bypasses validation.
type FiscalCode string

// fiscalCodePattern matches the 16-character Italian fiscal code, including
// the letter substitutions used for omocode variants in the numeric positions.
var fiscalCodePattern = regexp.MustCompile(
	`^[A-Z]{6}[0-9LMNPQRSTUV]{2}[ABCDEHLMPRST][0-9LMNPQRSTUV]{2}[A-Z][0-9LMNPQRSTUV]{3}[A-Z]$`,
)

// ParseFiscalCode constructs a FiscalCode from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or not in the
// fixed fiscal-code format; no other errors are expected.
func ParseFiscalCode(s string) (FiscalCode, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "fiscal code cannot be empty")
	}
	if !fiscalCodePattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid fiscal code format")
	}
	return FiscalCode(s), nil
}

// IsFiscalCode reports whether s is shaped like a fiscal code. Used for the
// structural disambiguation of the citizen identifier header.
func IsFiscalCode(s string) bool {
	return fiscalCodePattern.MatchString(s)
}

func (f FiscalCode) String() string {
	return string(f)
}
