package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadqo/certitrust/internal/model"
)

func TestTokenPairRoundTrip(t *testing.T) {
	claims := model.JWTClaims{
		UserID: "3f1c2a44-0000-0000-0000-000000000001",
		Email:  "admin@certitrust.local",
		Role:   "admin",
		Name:   "Administrator",
	}

	pair, err := GenerateTokenPair(claims, "secret-123", 1, 24)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	parsed, err := ValidateToken(pair.AccessToken, "secret-123")
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Role, parsed.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	claims := model.JWTClaims{UserID: "x", Email: "a@b.c", Role: "operator"}

	pair, err := GenerateTokenPair(claims, "secret-123", 1, 24)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "secret-lain")
	assert.Error(t, err)
}
