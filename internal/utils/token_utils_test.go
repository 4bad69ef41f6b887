package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	now := time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC)

	token, expiresAt, err := GenerateJWT("jti-1", "u-1", "admin", "admin", "secret", time.Hour, "farm", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := ParseAndValidateJWT(token, "secret", "farm", now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "jti-1", claims.ID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	_, err = ParseAndValidateJWT(token, "secret", "farm", now.Add(2*time.Hour))
	assert.Error(t, err, "expired token")
	_, err = ParseAndValidateJWT(token, "other", "farm", now)
	assert.Error(t, err, "wrong secret")
	_, err = ParseAndValidateJWT(token, "secret", "someone-else", now)
	assert.Error(t, err, "wrong issuer")
}

func TestParseAndValidateJWT_RequiresIDs(t *testing.T) {
	now := time.Now()
	token, _, err := GenerateJWT("", "u-1", "admin", "admin", "secret", time.Hour, "", now)
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "", now)
	assert.Error(t, err)
}
