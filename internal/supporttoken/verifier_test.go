package supporttoken

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizengw/pkg/domain"
	dErrors "citizengw/pkg/domain-errors"
)

const aFiscalCode = "AAABBB01C02D345D"

type keyPair struct {
	private *rsa.PrivateKey
	pem     string
}

func newKeyPair(t *testing.T) keyPair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return keyPair{private: key, pem: string(pubPEM)}
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.Claims) domain.SupportToken {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return domain.SupportToken(signed)
}

func validClaims(exp time.Time) Claims {
	return Claims{
		FiscalCode: aFiscalCode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "io-backend",
		},
	}
}

func TestVerifier_RoundTrip(t *testing.T) {
	kp := newKeyPair(t)
	verifier, err := NewVerifier(kp.pem)
	require.NoError(t, err)

	token := signToken(t, kp.private, validClaims(time.Now().Add(time.Hour)))

	fiscalCode, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.FiscalCode(aFiscalCode), fiscalCode)
}

func TestVerifier_RejectsForgedAndExpired(t *testing.T) {
	kp := newKeyPair(t)
	verifier, err := NewVerifier(kp.pem)
	require.NoError(t, err)

	t.Run("token signed with a different key is forbidden", func(t *testing.T) {
		other := newKeyPair(t)
		token := signToken(t, other.private, validClaims(time.Now().Add(time.Hour)))

		_, err := verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("expired token is forbidden", func(t *testing.T) {
		token := signToken(t, kp.private, validClaims(time.Now().Add(-time.Minute)))

		_, err := verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("token signed with HMAC is forbidden regardless of secret", func(t *testing.T) {
		// Algorithm confusion: an HS256 token "signed" with the public key
		// bytes must never verify.
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(time.Now().Add(time.Hour))).
			SignedString([]byte(kp.pem))
		require.NoError(t, err)

		_, err = verifier.Verify(domain.SupportToken(signed))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("garbage token is forbidden", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func TestVerifier_StrictPayloadSchema(t *testing.T) {
	kp := newKeyPair(t)
	verifier, err := NewVerifier(kp.pem)
	require.NoError(t, err)

	t.Run("missing exp is a validation failure, not forbidden", func(t *testing.T) {
		token := signToken(t, kp.private, Claims{FiscalCode: aFiscalCode})

		_, err := verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("missing fiscal code is a validation failure", func(t *testing.T) {
		token := signToken(t, kp.private, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		_, err := verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("malformed fiscal code is a validation failure", func(t *testing.T) {
		claims := validClaims(time.Now().Add(time.Hour))
		claims.FiscalCode = "not-a-fiscal-code"
		token := signToken(t, kp.private, claims)

		_, err := verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestVerifier_RemainingValidity(t *testing.T) {
	kp := newKeyPair(t)
	verifier, err := NewVerifier(kp.pem)
	require.NoError(t, err)

	now := time.Now()
	token := signToken(t, kp.private, validClaims(now.Add(time.Hour)))

	remaining, err := verifier.RemainingValidity(token, now)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 1.0)

	t.Run("token without exp cannot be blacklisted", func(t *testing.T) {
		token := signToken(t, kp.private, Claims{FiscalCode: aFiscalCode})
		_, err := verifier.RemainingValidity(token, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestNewVerifier_RejectsBadKeyMaterial(t *testing.T) {
	_, err := NewVerifier("not-a-pem-key")
	require.Error(t, err)
}
