package access

import (
	"context"
	"errors"
	"net/http"

	"github.com/gcclub/membercard/internal/model"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// ErrNoMember is returned by a MemberLookup when the identity has no member record.
var ErrNoMember = errors.New("access: no member for user")

// MemberLookup resolves the member record owned by an authentication identity.
type MemberLookup interface {
	FindActor(ctx context.Context, userID uint32) (sharedContext.Actor, error)
}

var (
	noMemberResponse = sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "ACCESS-001",
		Message: "ไม่มีข้อมูลสมาชิก",
	}

	forbiddenResponse = sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "ACCESS-002",
		Message: "คุณไม่มีสิทธิ์เข้าหน้านี้",
	}
)

// Require builds a gin middleware that admits only actors whose role is in roles.
// It must run after the JWT middleware. On success the resolved actor is stored
// in the context for handlers.
func Require(lookup MemberLookup, roles ...model.Role) gin.HandlerFunc {
	gate := NewGate(roles...)

	return func(c *gin.Context) {
		userID, ok := sharedContext.RequireUserID(c)
		if !ok {
			return
		}

		log := logger.FromContext(c.Request.Context())

		actor, err := lookup.FindActor(c.Request.Context(), userID)
		hasMember := true
		if err != nil {
			if !errors.Is(err, ErrNoMember) {
				log.Error("actor lookup failed", "user_id", userID, "error", err)
				c.Error(err)
				c.AbortWithStatusJSON(sharedError.InternalServerError.Status, sharedError.InternalServerError)
				return
			}
			hasMember = false
		}

		decision := gate.Decide(actor.Role, hasMember)
		switch decision.Reason {
		case Allowed:
			sharedContext.SetActor(c, actor)
			ctx := logger.With(c.Request.Context(), "actor", actor.MemberID, "role", actor.Role.String())
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		case NoMember:
			log.Warn("access denied: no member record", "user_id", userID, "path", c.FullPath())
			resp := noMemberResponse.WithRedirect(decision.Redirect)
			c.AbortWithStatusJSON(resp.Status, resp)
		default:
			log.Warn("access denied: role not allowed",
				"member_id", actor.MemberID,
				"role", actor.Role.String(),
				"path", c.FullPath(),
			)
			resp := forbiddenResponse.WithRedirect(decision.Redirect)
			c.AbortWithStatusJSON(resp.Status, resp)
		}
	}
}
