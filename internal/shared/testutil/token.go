package testutil

import (
	"github.com/gcclub/membercard/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(userID, username string) (string, error)
	GenerateRefreshTokenFunc func(userID, username string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateAccessToken(userID, username string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, username)
	}
	return "mock-access-token", nil
}

func (m *MockTokenManager) GenerateRefreshToken(userID, username string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, username)
	}
	return "mock-refresh-token", nil
}

// ValidateToken treats the token string itself as the user ID, so tests can
// authenticate as any user with Token: "<id>".
func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return &token.Claims{UserID: tokenString, Username: tokenString, TokenType: token.ACCESS}, nil
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}
