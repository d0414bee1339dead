package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	signed, err := GenerateStandardToken(userID)
	require.NoError(t, err)

	token, err := ValidatedToken(signed)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateTamperedToken(t *testing.T) {
	signed, err := GenerateStandardToken(uuid.New())
	require.NoError(t, err)

	_, err = ValidatedToken(signed + "x")
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidatedToken("not.a.token")
	assert.Error(t, err)
}
