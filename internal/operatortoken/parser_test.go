package operatortoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "citizengw/pkg/domain-errors"
)

const signingKey = "test-operator-signing-key"

func signOperatorToken(t *testing.T, key string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func operatorClaims() Claims {
	return Claims{
		OID:        "5a6b2d0a-7c2f-4f9e-9df3-1f1a2b3c4d5e",
		FamilyName: "Rossi",
		GivenName:  "Mario",
		Emails:     []string{"mario.rossi@example.org"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParser_ValidToken(t *testing.T) {
	parser := NewParser(signingKey)
	tokenString := signOperatorToken(t, signingKey, operatorClaims())

	op, err := parser.ParseOperator(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "5a6b2d0a-7c2f-4f9e-9df3-1f1a2b3c4d5e", op.OID)
	assert.Equal(t, "Rossi", op.FamilyName)
	assert.Equal(t, "Mario", op.GivenName)
	assert.Equal(t, "mario.rossi@example.org", op.PrimaryEmail())
}

func TestParser_WrongKey(t *testing.T) {
	parser := NewParser(signingKey)
	tokenString := signOperatorToken(t, "some-other-key", operatorClaims())

	_, err := parser.ParseOperator(tokenString)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestParser_ExpiredToken(t *testing.T) {
	parser := NewParser(signingKey)
	claims := operatorClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	tokenString := signOperatorToken(t, signingKey, claims)

	_, err := parser.ParseOperator(tokenString)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestParser_MissingOID(t *testing.T) {
	parser := NewParser(signingKey)
	claims := operatorClaims()
	claims.OID = ""
	tokenString := signOperatorToken(t, signingKey, claims)

	_, err := parser.ParseOperator(tokenString)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
