package token

import (
	"errors"
	"time"

	"github.com/gcclub/membercard/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrExpiredToken  = errors.New("token: expired token")
	ErrInvalidClaims = errors.New("token: invalid claims")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type Manager interface {
	GenerateAccessToken(userID string, username string) (string, error)
	GenerateRefreshToken(userID string, username string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTManager struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret:        []byte(cfg.JWT.Secret),
		issuer:        cfg.App.Name,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
	}
}

func (m *JWTManager) GenerateAccessToken(userID, username string) (string, error) {
	return m.generate(userID, username, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(userID, username string) (string, error) {
	return m.generate(userID, username, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) generate(userID, username, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidClaims
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
