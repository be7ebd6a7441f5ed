package domain

import (
	"strings"

	dErrors "citizengw/pkg/domain-errors"
)

// CitizenIDKind tags which variant of the citizen identifier union is active.
type CitizenIDKind string

const (
	// CitizenIDKindFiscalCode marks a literal canonical identifier.
	CitizenIDKindFiscalCode CitizenIDKind = "FiscalCode"
	// CitizenIDKindSupportToken marks a signed delegation token.
	CitizenIDKindSupportToken CitizenIDKind = "SupportToken"
)

// CitizenID is the union of the two identifier inputs a caller may supply:
// a literal fiscal code or an opaque support token. Exactly one variant is
// active; the kind is resolved once at the boundary and never re-derived by
// string sniffing downstream.
type CitizenID struct {
	kind       CitizenIDKind
	fiscalCode FiscalCode
	token      SupportToken
}

// SupportToken is an opaque signed delegation token string. Its validity is
// established by the verifier, not by this type.
type SupportToken string

func (t SupportToken) String() string {
	return string(t)
}

// ParseCitizenID resolves the raw header value into the tagged union. The two
// variants are disambiguated structurally: a fixed-length fixed-character-class
// fiscal code versus a three-segment JWT-shaped string.
//
// Errors: returns CodeValidation when the value is empty or matches neither
// shape.
func ParseCitizenID(raw string) (CitizenID, error) {
	if raw == "" {
		return CitizenID{}, dErrors.New(dErrors.CodeValidation, "citizen identifier is required")
	}
	if IsFiscalCode(raw) {
		return CitizenID{kind: CitizenIDKindFiscalCode, fiscalCode: FiscalCode(raw)}, nil
	}
	if looksLikeJWT(raw) {
		return CitizenID{kind: CitizenIDKindSupportToken, token: SupportToken(raw)}, nil
	}
	return CitizenID{}, dErrors.New(dErrors.CodeValidation, "citizen identifier is neither a fiscal code nor a support token")
}

// looksLikeJWT checks the three dot-separated non-empty segments of a compact
// JWS. Signature validity is the verifier's concern.
func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// Kind returns the active variant tag.
func (c CitizenID) Kind() CitizenIDKind {
	return c.kind
}

// FiscalCode returns the literal identifier. Valid only when
// Kind() == CitizenIDKindFiscalCode.
func (c CitizenID) FiscalCode() FiscalCode {
	return c.fiscalCode
}

// SupportToken returns the delegation token. Valid only when
// Kind() == CitizenIDKindSupportToken.
func (c CitizenID) SupportToken() SupportToken {
	return c.token
}
