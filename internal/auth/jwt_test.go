package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret-key", time.Hour)

	token, err := tm.GenerateToken(42, "priya", "EMPLOYEE")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "priya", claims.Username)
	assert.Equal(t, "EMPLOYEE", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenManager_UsesConfiguredTTL(t *testing.T) {
	tm := NewTokenManager("test-secret-key", 15*time.Minute)

	token, err := tm.GenerateToken(1, "boss", "MANAGEMENT")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret-key", time.Hour)
	other := NewTokenManager("a-different-secret", time.Hour)

	token, err := tm.GenerateToken(42, "priya", "EMPLOYEE")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret-key", -time.Minute)

	token, err := tm.GenerateToken(42, "priya", "EMPLOYEE")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret-key", time.Hour)

	_, err := tm.ValidateToken("not-a-token")
	assert.Error(t, err)
}
