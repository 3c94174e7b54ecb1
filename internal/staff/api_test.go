package staff_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/flash"
	"github.com/gcclub/membercard/internal/shared/middleware"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/gcclub/membercard/internal/staff"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var today = time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)

func setupTestEnvironment(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.NewTestConfig()

	memberRepository := member.NewMemberRepository()
	userRepository := member.NewUserRepository()
	allocator := member.NewIDAllocator()

	memberService := member.NewMemberService(db, cfg, memberRepository, userRepository, allocator,
		flash.NewMemoryStore(cfg.Membership.FlashTTL), nil)
	staffService := staff.NewStaffService(db, cfg, memberRepository, userRepository, allocator)
	staffService.SetClock(func() time.Time { return today })
	staffHandler := staff.NewStaffHandler(staffService)

	router := testutil.SetupTestRouter()
	api := router.Group("/api/v1/staff", middleware.JWT(testutil.NewMockTokenManager()))
	api.GET("/dashboard", access.Require(memberService, model.StaffRoles...), staffHandler.Dashboard)
	api.POST("/register", access.Require(memberService, model.RoleCommittee, model.RolePresident), staffHandler.Register)

	return db, router
}

func tokenOf(m *model.Member) string {
	return strconv.FormatUint(uint64(m.UserID), 10)
}

func setExpiry(t *testing.T, db *gorm.DB, memberID, expire string) {
	t.Helper()
	d, err := model.ParseDate(expire)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Member{}).
		Where("member_id = ?", memberID).
		UpdateColumn("expire_date", model.NewDate(d)).Error)
}

func memberIDs(rows []member.MemberSummary) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.MemberID)
	}
	return ids
}

func TestDashboard(t *testing.T) {
	// Given: members around the expiry boundaries
	db, router := setupTestEnvironment(t)
	joined := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	committee := testutil.SeedMember(t, db, "GC-001", model.RoleCommittee, today)
	for _, id := range []string{"GC-002", "GC-003", "GC-004", "GC-005", "GC-006"} {
		testutil.SeedMember(t, db, id, model.RoleMember, joined)
	}
	setExpiry(t, db, "GC-002", "2025-05-20") // expiring soon
	setExpiry(t, db, "GC-003", "2025-06-09") // last day of the window
	setExpiry(t, db, "GC-004", "2025-06-10") // just outside the window
	setExpiry(t, db, "GC-005", "2025-05-09") // expired yesterday
	setExpiry(t, db, "GC-006", "2024-12-31")

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/staff/dashboard", Token: tokenOf(committee),
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var resp staff.DashboardResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, "2025-05-10", resp.Today)
	assert.Equal(t, int64(6), resp.Total)
	assert.Equal(t, int64(4), resp.Active)
	assert.Equal(t, int64(2), resp.Expired)
	assert.Equal(t, []string{"GC-002", "GC-003"}, memberIDs(resp.ExpiringSoon))
	assert.Equal(t, []string{"GC-005", "GC-006"}, memberIDs(resp.RecentlyExpired))
	require.Len(t, resp.NewMembers, staff.DashboardLimit)
	assert.Equal(t, "GC-001", resp.NewMembers[0].MemberID)
	assert.True(t, resp.CanRegisterStaff)
}

func TestDashboard_StaffCannotRegister(t *testing.T) {
	db, router := setupTestEnvironment(t)
	staffMember := testutil.SeedMember(t, db, "GC-001", model.RoleStaff, today)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/staff/dashboard", Token: tokenOf(staffMember),
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp staff.DashboardResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.False(t, resp.CanRegisterStaff)
}

func TestRegister(t *testing.T) {
	db, router := setupTestEnvironment(t)
	president := testutil.SeedMember(t, db, "GC-001", model.RolePresident, today)
	staffMember := testutil.SeedMember(t, db, "GC-002", model.RoleStaff, today)

	register := func(who *model.Member, body map[string]any) *httptest.ResponseRecorder {
		return testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost, URL: "/api/v1/staff/register", Body: body, Token: tokenOf(who),
		})
	}
	validBody := func(username string) map[string]any {
		return map[string]any{"username": username, "password": "s3cretpass", "passwordConfirm": "s3cretpass"}
	}

	t.Run("president registers a staff account", func(t *testing.T) {
		res := register(president, validBody("frontdesk"))
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		var user model.User
		require.NoError(t, db.Where("username = ?", "frontdesk").First(&user).Error)
		var stored model.Member
		require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
		assert.Equal(t, model.RoleStaff, stored.Role)
		assert.Equal(t, "frontdesk", stored.FirstName)
		assert.Equal(t, staff.StaffLastName, stored.LastName)
		assert.Equal(t, "GC-003", stored.MemberID)
		assert.Equal(t, "2025-05-10", model.FormatDate(stored.JoinDate))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		res := register(president, validBody("frontdesk"))
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("member id lookalike is rejected", func(t *testing.T) {
		res := register(president, validBody("GC-999"))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		body := validBody("another")
		body["passwordConfirm"] = "different1"
		res := register(president, body)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("staff may not register staff", func(t *testing.T) {
		res := register(staffMember, validBody("sneaky"))
		assert.Equal(t, http.StatusForbidden, res.Code)

		var resp sharedError.ErrorResponse
		testutil.ParseResponse(t, res, &resp)
		assert.Equal(t, access.StaffLandingURL, resp.Redirect)
	})
}
