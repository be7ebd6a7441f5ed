// Package operatortoken validates the bearer tokens issued to back-office
// operators by the identity provider and maps their claims onto the domain
// operator.
package operatortoken

import (
	"github.com/golang-jwt/jwt/v5"

	"citizengw/pkg/domain"
	dErrors "citizengw/pkg/domain-errors"
	pstrings "citizengw/pkg/platform/strings"
)

// Claims is the operator token payload.
type Claims struct {
	OID        string   `json:"oid"`
	FamilyName string   `json:"family_name"`
	GivenName  string   `json:"given_name"`
	Emails     []string `json:"emails"`
	jwt.RegisteredClaims
}

// Parser verifies HS256 operator tokens against a shared signing key.
type Parser struct {
	signingKey []byte
	parser     *jwt.Parser
}

// NewParser constructs an operator token parser.
func NewParser(signingKey string) *Parser {
	return &Parser{
		signingKey: []byte(signingKey),
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// ParseOperator verifies the token and returns the operator it identifies.
func (p *Parser) ParseOperator(tokenString string) (domain.Operator, error) {
	var claims Claims
	_, err := p.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return p.signingKey, nil
	})
	if err != nil {
		return domain.Operator{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "operator token rejected")
	}
	return domain.NewOperator(claims.OID, claims.FamilyName, claims.GivenName,
		pstrings.DedupeAndTrimLower(claims.Emails))
}
