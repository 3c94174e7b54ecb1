package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gcclub/membercard/internal/auth"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/access"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/middleware"
	"github.com/gcclub/membercard/internal/shared/password"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/gcclub/membercard/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var joined = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*gorm.DB, *gin.Engine, *testutil.MockTokenManager) {
	t.Helper()

	// Setup test database
	db := testutil.SetupTestDB(t)

	// Setup dependencies
	mockTokenManager := testutil.NewMockTokenManager()
	authService := auth.NewAuthService(db, member.NewUserRepository(), member.NewMemberRepository(), mockTokenManager)
	authHandler := auth.NewAuthHandler(authService)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)
	router.POST("/api/v1/auth/refresh", authHandler.Refresh)
	router.POST("/api/v1/auth/password", middleware.JWT(mockTokenManager), authHandler.ChangePassword)

	return db, router, mockTokenManager
}

func login(t *testing.T, router *gin.Engine, username, pw string) (*httptest.ResponseRecorder, auth.LoginResponse) {
	t.Helper()
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Username: username, Password: pw},
	})
	var response auth.LoginResponse
	if recorder.Code == http.StatusOK {
		testutil.ParseResponse(t, recorder, &response)
	}
	return recorder, response
}

func TestLogin_MemberLandsOnDashboard(t *testing.T) {
	// Given: a member account
	db, router, _ := setupTestEnvironment(t)
	testutil.SeedMember(t, db, "GC-001", model.RoleMember, joined)

	// When
	recorder, response := login(t, router, "GC-001", testutil.TestPassword)

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "mock-access-token", response.AccessToken)
	assert.Equal(t, "mock-refresh-token", response.RefreshToken)
	assert.Equal(t, access.MemberLandingURL, response.Landing)
	assert.Equal(t, "GC-001", response.MemberID)
	assert.Equal(t, "MEMBER", response.Role)
}

func TestLogin_StaffSideLandsOnStaffDashboard(t *testing.T) {
	db, router, _ := setupTestEnvironment(t)
	testutil.SeedMember(t, db, "GC-001", model.RoleStaff, joined)
	testutil.SeedMember(t, db, "GC-002", model.RolePresident, joined)
	testutil.SeedStaffUser(t, db, "orphan")

	for _, username := range []string{"GC-001", "GC-002", "orphan"} {
		t.Run(username, func(t *testing.T) {
			recorder, response := login(t, router, username, testutil.TestPassword)

			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, access.StaffLandingURL, response.Landing)
		})
	}
}

func TestLogin_IncorrectCredentials(t *testing.T) {
	// Given
	db, router, _ := setupTestEnvironment(t)
	testutil.SeedMember(t, db, "GC-001", model.RoleMember, joined)

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "GC-001", "not-the-password"},
		{"unknown username", "GC-404", testutil.TestPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			recorder, _ := login(t, router, tc.username, tc.password)

			// Then: both cases look identical to the client
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "AUTH-003", errorResponse.Code)
		})
	}
}

func TestLogin_ValidationError_MissingFields(t *testing.T) {
	_, router, _ := setupTestEnvironment(t)

	for _, body := range []map[string]string{
		{"username": "GC-001"},
		{"password": "password123"},
		{},
	} {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/login",
			Body:   body,
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.NotEmpty(t, errorResponse.Message)
	}
}

func TestRefresh(t *testing.T) {
	// Given: the mock treats "refresh:<id>" as a refresh token for <id>
	db, router, tokens := setupTestEnvironment(t)
	m := testutil.SeedMember(t, db, "GC-001", model.RoleMember, joined)
	userID := strconv.FormatUint(uint64(m.UserID), 10)
	tokens.ValidateTokenFunc = func(raw string) (*token.Claims, error) {
		switch raw {
		case "refresh:" + userID:
			return &token.Claims{UserID: userID, TokenType: token.REFRESH}, nil
		case "access:" + userID:
			return &token.Claims{UserID: userID, TokenType: token.ACCESS}, nil
		case "refresh:999":
			return &token.Claims{UserID: "999", TokenType: token.REFRESH}, nil
		}
		return nil, errors.New("bad token")
	}

	t.Run("refresh token yields access token", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/refresh",
			Body:   auth.RefreshRequest{RefreshToken: "refresh:" + userID},
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		var response auth.RefreshResponse
		testutil.ParseResponse(t, recorder, &response)
		assert.Equal(t, "mock-access-token", response.AccessToken)
	})

	for _, raw := range []string{"access:" + userID, "refresh:999", "garbage"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/auth/refresh",
				Body:   auth.RefreshRequest{RefreshToken: raw},
			})

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "AUTH-005", errorResponse.Code)
			assert.Equal(t, access.LoginPath, errorResponse.Redirect)
		})
	}
}

func TestChangePassword(t *testing.T) {
	db, router, _ := setupTestEnvironment(t)
	m := testutil.SeedMember(t, db, "GC-001", model.RoleMember, joined)
	bearer := strconv.FormatUint(uint64(m.UserID), 10)

	t.Run("wrong old password", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/password",
			Token:  bearer,
			Body: auth.ChangePasswordRequest{
				OldPassword:        "nope",
				NewPassword:        "new-password-1",
				NewPasswordConfirm: "new-password-1",
			},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "AUTH-004", errorResponse.Code)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/password",
			Token:  bearer,
			Body: auth.ChangePasswordRequest{
				OldPassword:        testutil.TestPassword,
				NewPassword:        "new-password-1",
				NewPasswordConfirm: "new-password-2",
			},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("success", func(t *testing.T) {
		// When
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/password",
			Token:  bearer,
			Body: auth.ChangePasswordRequest{
				OldPassword:        testutil.TestPassword,
				NewPassword:        "new-password-1",
				NewPasswordConfirm: "new-password-1",
			},
		})

		// Then
		require.Equal(t, http.StatusOK, recorder.Code)
		var response auth.ChangePasswordResponse
		testutil.ParseResponse(t, recorder, &response)
		assert.Equal(t, access.MemberLandingURL, response.Redirect)

		var user model.User
		require.NoError(t, db.First(&user, m.UserID).Error)
		assert.True(t, password.Matches(user.Password, "new-password-1"))

		loginRecorder, _ := login(t, router, "GC-001", testutil.TestPassword)
		assert.Equal(t, http.StatusBadRequest, loginRecorder.Code)
	})

	t.Run("requires token", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/password",
			Body:   map[string]string{},
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
