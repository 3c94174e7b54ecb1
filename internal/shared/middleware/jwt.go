package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

// Register JWT error responses. Every failure sends the client back to login;
// an expired token gets its own code so clients can try a refresh first.
func init() {
	loginRequired := sharedError.ErrorResponse{
		Status:   http.StatusUnauthorized,
		Code:     "AUTH-000",
		Message:  "กรุณาเข้าสู่ระบบ",
		Redirect: sharedContext.LoginPath,
	}

	sharedError.RegisterDomainErrorResponse(missingToken, loginRequired)
	sharedError.RegisterDomainErrorResponse(invalidToken, loginRequired)
	sharedError.RegisterDomainErrorResponse(invalidClaims, loginRequired)

	expired := loginRequired
	expired.Code = "AUTH-001"
	expired.Message = "เซสชันหมดอายุ กรุณาเข้าสู่ระบบอีกครั้ง"
	sharedError.RegisterDomainErrorResponse(expiredToken, expired)
}

// JWT authenticates the bearer token and stores the user identity in the context.
// Only access tokens are accepted.
func JWT(tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Step 1: extract token
		raw, err := extractToken(c)
		if err != nil {
			logJWTFailure(c, "extract_token", err)
			handleJWTError(c, err)
			return
		}

		// Step 2: validate token
		claims, err := tokenManager.ValidateToken(raw)
		if err != nil {
			logJWTFailure(c, "validate_token", err)
			handleJWTError(c, mapTokenError(err))
			return
		}
		if claims.TokenType != token.ACCESS {
			logJWTFailure(c, "token_type", token.ErrInvalidClaims)
			handleJWTError(c, ErrInvalidClaims)
			return
		}

		// Authenticated: store the user identity for access.Require and handlers
		c.Set(sharedContext.UserIDKey, claims.UserID)
		c.Set(sharedContext.UsernameKey, claims.Username)
		c.Next()
	}
}

// logJWTFailure logs at the point of detection, tagged with the failing step.
func logJWTFailure(c *gin.Context, step string, err error) {
	slog.Warn("JWT authentication failed",
		"step", step,
		"error", err.Error(),
		"client_ip", c.ClientIP(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_agent", c.Request.UserAgent(),
	)
}

// handleJWTError handles JWT errors using the standardized error response format
// Note: Logging is done at the point of error detection in JWT()
func handleJWTError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		// Unexpected error, fallback response
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:   http.StatusUnauthorized,
			Code:     "AUTH-999",
			Message:  "การยืนยันตัวตนล้มเหลว",
			Redirect: sharedContext.LoginPath,
		})
	}
	c.Abort()
}

// extractToken reads the bearer token from the Authorization header.
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

// mapTokenError converts token package errors to the middleware's domain errors.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
