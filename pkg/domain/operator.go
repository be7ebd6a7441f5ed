package domain

import (
	dErrors "citizengw/pkg/domain-errors"
)

// Operator is an authenticated directory-backed user acting on citizen data.
// Constructed once per request from verified authentication claims and
// immutable for the request's duration. Never persisted by this subsystem.
type Operator struct {
	// OID is the directory object identifier, the stable operator key.
	OID string
	// DisplayName parts as carried by the identity provider.
	FamilyName string
	GivenName  string
	// Emails holds the verified email addresses; the first one is recorded
	// on audit rows.
	Emails []string
	// Groups is populated lazily by the role lookup service; nil means
	// "not yet resolved", not "no groups".
	Groups []string
}

// NewOperator validates the minimal claim set needed to act as an operator.
//
// Errors: returns CodeUnauthorized when the object identifier is missing,
// since without it neither authorization nor auditing can key the operator.
func NewOperator(oid string, familyName, givenName string, emails []string) (Operator, error) {
	if oid == "" {
		return Operator{}, dErrors.New(dErrors.CodeUnauthorized, "operator object identifier is required")
	}
	return Operator{
		OID:        oid,
		FamilyName: familyName,
		GivenName:  givenName,
		Emails:     emails,
	}, nil
}

// PrimaryEmail returns the first verified email, or "" when none is present.
func (o Operator) PrimaryEmail() string {
	if len(o.Emails) == 0 {
		return ""
	}
	return o.Emails[0]
}
