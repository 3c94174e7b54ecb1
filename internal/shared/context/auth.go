package context

import (
	"net/http"
	"strconv"

	"github.com/gcclub/membercard/internal/model"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Context keys for storing authentication information
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	ActorKey    = "actor"
)

// LoginPath is the login endpoint unauthenticated clients are sent to.
const LoginPath = "/api/v1/auth/login"

// Actor is the authenticated caller together with its member record.
type Actor struct {
	UserID   uint32
	MemberPK uint32
	MemberID string
	Role     model.Role
}

var loginRequired = sharedError.ErrorResponse{
	Status:   http.StatusUnauthorized,
	Code:     "AUTH-000",
	Message:  "กรุณาเข้าสู่ระบบ",
	Redirect: LoginPath,
}

func GetUserID(c *gin.Context) (uint32, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}

	idStr, ok := userID.(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(id), true
}

// RequireUserID retrieves the authenticated user's ID from the Gin context.
// If it is missing, an authentication error response is sent and false is returned.
func RequireUserID(c *gin.Context) (uint32, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(loginRequired.Status, loginRequired)
		logger.FromContext(c.Request.Context()).Error("[API] user id missing from context")
		return 0, false
	}
	return userID, true
}

func SetActor(c *gin.Context, actor Actor) {
	c.Set(ActorKey, actor)
}

func GetActor(c *gin.Context) (Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}

// RequireActor returns the actor resolved by the access gate.
// Handlers behind the gate can rely on it; anything else gets a login response.
func RequireActor(c *gin.Context) (Actor, bool) {
	actor, ok := GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(loginRequired.Status, loginRequired)
		logger.FromContext(c.Request.Context()).Error("[API] actor missing from context")
		return Actor{}, false
	}
	return actor, true
}
