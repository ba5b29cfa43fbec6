package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"ROLE_USER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.Equal(t, "Inkstone", claims.Issuer)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(1, []string{"ROLE_USER"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".invalidsignature"

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(1, []string{"ROLE_USER"})
	require.NoError(t, err)

	signature, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], signature)

	_, err = ExtractSignature("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, CheckPasswordHash("password123", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))
}
