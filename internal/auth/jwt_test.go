package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "seller", role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, _, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	_, _, err = ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken(7, "user")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, _, err = ValidateToken(tampered)
	assert.Error(t, err)
}
