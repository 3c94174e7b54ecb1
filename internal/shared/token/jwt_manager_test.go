package token_test

import (
	"testing"
	"time"

	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(expiry time.Duration) *token.JWTManager {
	cfg := &config.Config{
		App: config.AppConfig{Name: "membercard-test"},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        expiry,
			RefreshExpiry: time.Hour,
		},
	}
	return token.NewJWTManager(cfg)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := newManager(time.Hour)

	access, err := manager.GenerateAccessToken("12", "GC-012")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "12", claims.UserID)
	assert.Equal(t, "GC-012", claims.Username)
	assert.Equal(t, token.ACCESS, claims.TokenType)

	refresh, err := manager.GenerateRefreshToken("12", "GC-012")
	require.NoError(t, err)
	claims, err = manager.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, token.REFRESH, claims.TokenType)
}

func TestJWTManager_Expired(t *testing.T) {
	manager := newManager(-time.Minute)

	access, err := manager.GenerateAccessToken("1", "staff")
	require.NoError(t, err)

	_, err = manager.ValidateToken(access)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestJWTManager_Tampered(t *testing.T) {
	manager := newManager(time.Hour)

	access, err := manager.GenerateAccessToken("1", "staff")
	require.NoError(t, err)

	_, err = manager.ValidateToken(access + "x")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = manager.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
