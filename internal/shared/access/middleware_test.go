package access_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubLookup struct {
	actors map[uint32]sharedContext.Actor
	err    error
}

func (s *stubLookup) FindActor(_ context.Context, userID uint32) (sharedContext.Actor, error) {
	if s.err != nil {
		return sharedContext.Actor{}, s.err
	}
	actor, ok := s.actors[userID]
	if !ok {
		return sharedContext.Actor{}, access.ErrNoMember
	}
	return actor, nil
}

func setupGateRouter(lookup access.MemberLookup, userID string, roles ...model.Role) *gin.Engine {
	router := testutil.SetupTestRouter()
	router.GET("/protected",
		func(c *gin.Context) {
			if userID != "" {
				c.Set(sharedContext.UserIDKey, userID)
			}
			c.Next()
		},
		access.Require(lookup, roles...),
		func(c *gin.Context) {
			actor, _ := sharedContext.GetActor(c)
			c.JSON(http.StatusOK, gin.H{"memberId": actor.MemberID})
		},
	)
	return router
}

func TestRequire(t *testing.T) {
	lookup := &stubLookup{actors: map[uint32]sharedContext.Actor{
		1: {UserID: 1, MemberID: "GC-001", Role: model.RoleMember},
		2: {UserID: 2, MemberID: "GC-002", Role: model.RoleStaff},
	}}

	t.Run("allowed role reaches handler", func(t *testing.T) {
		router := setupGateRouter(lookup, "2", model.StaffRoles...)

		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/protected"})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "GC-002")
	})

	t.Run("member is sent to member landing", func(t *testing.T) {
		router := setupGateRouter(lookup, "1", model.StaffRoles...)

		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/protected"})

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		var resp sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &resp)
		assert.Equal(t, "ACCESS-002", resp.Code)
		assert.Equal(t, access.MemberLandingURL, resp.Redirect)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("identity without member goes to login", func(t *testing.T) {
		router := setupGateRouter(lookup, "99")

		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/protected"})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		var resp sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &resp)
		assert.Equal(t, "ACCESS-001", resp.Code)
		assert.Equal(t, access.LoginPath, resp.Redirect)
	})

	t.Run("missing authentication", func(t *testing.T) {
		router := setupGateRouter(lookup, "")

		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/protected"})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("lookup failure is a server error", func(t *testing.T) {
		router := setupGateRouter(&stubLookup{err: errors.New("db down")}, "1")

		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/protected"})

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
