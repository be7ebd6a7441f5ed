// Package supporttoken verifies signed delegation tokens ("support tokens").
// A support token is an RS256 JWT whose payload names exactly one fiscal code
// it authorizes access to, plus a standard expiry.
package supporttoken

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"citizengw/pkg/domain"
	dErrors "citizengw/pkg/domain-errors"
)

// Claims is the expected support-token payload shape.
type Claims struct {
	FiscalCode string `json:"fiscalCode"`
	jwt.RegisteredClaims
}

// Verifier validates support tokens against a fixed RSA public key.
// It is a pure function of (token, key, current time); revocation is the
// caller's concern.
type Verifier struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

// NewVerifier parses the PEM-encoded RSA public key. Only the RS256 algorithm
// is accepted; tokens signed with any other method are rejected outright so
// algorithm confusion is impossible.
func NewVerifier(publicKeyPEM string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "invalid support token public key")
	}
	return &Verifier{
		publicKey: key,
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})),
	}, nil
}

// Verify checks the token's signature and expiry, then decodes the payload
// against the strict schema and extracts the authorized fiscal code.
//
// Errors: CodeForbidden when the signature does not verify or the token has
// expired (the caller presented a credential; it was simply invalid), and
// CodeValidation when the signature is good but the payload is not in the
// expected shape. The two are distinct on purpose and must stay so.
func (v *Verifier) Verify(token domain.SupportToken) (domain.FiscalCode, error) {
	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token.String(), claims, func(t *jwt.Token) (any, error) {
		return v.publicKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", dErrors.Wrap(err, dErrors.CodeForbidden, "support token not authorized")
	}

	if claims.ExpiresAt == nil {
		return "", dErrors.New(dErrors.CodeValidation, "support token payload invalid")
	}
	fiscalCode, err := domain.ParseFiscalCode(claims.FiscalCode)
	if err != nil {
		return "", dErrors.New(dErrors.CodeValidation, "support token payload invalid")
	}
	return fiscalCode, nil
}

// RemainingValidity returns how long the token stays valid from now. It
// decodes the payload without re-verifying the signature, so it must only be
// called on tokens the pipeline has already verified.
//
// Errors: CodeValidation when the payload carries no expiry.
func (v *Verifier) RemainingValidity(token domain.SupportToken, now time.Time) (time.Duration, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.String(), claims); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "support token payload invalid")
	}
	if claims.ExpiresAt == nil {
		return 0, dErrors.New(dErrors.CodeValidation, "support token payload invalid")
	}
	return claims.ExpiresAt.Time.Sub(now), nil
}
