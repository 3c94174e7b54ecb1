package card_test

import (
	"bytes"
	"image/png"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gcclub/membercard/internal/card"
	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var today = time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)

func setupTestEnvironment(t *testing.T) (*gorm.DB, *gin.Engine, *testutil.FakePhotoStore) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	photos := testutil.NewFakePhotoStore()
	service := card.NewCardService(db, testutil.NewTestConfig(), member.NewMemberRepository(), photos)
	service.SetClock(func() time.Time { return today })
	h := card.NewCardHandler(service)

	router := testutil.SetupTestRouter()
	router.GET("/member/:publicId/", h.Card)
	router.GET("/member/:publicId/expired/", h.Expired)
	router.GET("/member/:publicId/print/", h.Print)
	router.GET("/member/:publicId/qr.png", h.QR)
	router.GET("/member/:publicId/photo", h.Photo)
	router.GET("/card/:publicId/", h.ViewOnly)
	router.GET("/card/:publicId/expired/", h.ExpiredViewOnly)

	return db, router, photos
}

func seedWithExpiry(t *testing.T, db *gorm.DB, memberID, expire string) *model.Member {
	t.Helper()
	m := testutil.SeedMember(t, db, memberID, model.RoleMember, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	d, err := model.ParseDate(expire)
	require.NoError(t, err)
	m.ExpireDate = model.NewDatePtr(d)
	require.NoError(t, db.Save(m).Error)
	return m
}

func get(t *testing.T, router *gin.Engine, url string) *card.CardResponse {
	t.Helper()
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: url})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var response card.CardResponse
	testutil.ParseResponse(t, recorder, &response)
	return &response
}

func TestCard_Active(t *testing.T) {
	// Given: a membership that expires today
	db, router, _ := setupTestEnvironment(t)
	m := seedWithExpiry(t, db, "GC-001", "2025-05-10")

	// When
	response := get(t, router, "/member/"+m.PublicID+"/")

	// Then: still active on its last day
	assert.Equal(t, card.ViewActive, response.View)
	assert.False(t, response.ViewOnly)
	assert.Equal(t, "GC-001", response.MemberID)
	assert.Equal(t, model.StatusActive, response.Status)
	assert.True(t, response.IsValid)
	assert.True(t, response.IsExpiringSoon)
	assert.Equal(t, "2025-05-10", response.Today)
	assert.Equal(t, "http://cards.test/member/"+m.PublicID+"/", response.CardURL)
	assert.True(t, strings.HasPrefix(response.QRCode, "data:image/png;base64,"))
	assert.Nil(t, response.PhotoURL)
}

func TestCard_ExpiredRedirects(t *testing.T) {
	db, router, _ := setupTestEnvironment(t)
	m := seedWithExpiry(t, db, "GC-001", "2025-05-09")

	testCases := []struct {
		url      string
		location string
	}{
		{"/member/" + m.PublicID + "/", "/member/" + m.PublicID + "/expired/"},
		{"/card/" + m.PublicID + "/", "/card/" + m.PublicID + "/expired/"},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			// When
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: tc.url})

			// Then
			assert.Equal(t, http.StatusFound, recorder.Code)
			assert.Equal(t, tc.location, recorder.Header().Get("Location"))
		})
	}

	expired := get(t, router, "/member/"+m.PublicID+"/expired/")
	assert.Equal(t, card.ViewExpired, expired.View)
	assert.Equal(t, model.StatusExpired, expired.Status)
	assert.False(t, expired.ViewOnly)

	viewOnly := get(t, router, "/card/"+m.PublicID+"/expired/")
	assert.True(t, viewOnly.ViewOnly)
}

func TestCard_ViewOnlyAndPrint(t *testing.T) {
	db, router, _ := setupTestEnvironment(t)
	m := seedWithExpiry(t, db, "GC-001", "2026-01-01")

	viewOnly := get(t, router, "/card/"+m.PublicID+"/")
	assert.Equal(t, card.ViewActive, viewOnly.View)
	assert.True(t, viewOnly.ViewOnly)

	printed := get(t, router, "/member/"+m.PublicID+"/print/")
	assert.Equal(t, card.ViewPrint, printed.View)
	assert.False(t, printed.IsExpiringSoon)
}

func TestCard_NotFound(t *testing.T) {
	_, router, _ := setupTestEnvironment(t)

	for _, url := range []string{
		"/member/not-a-uuid/",
		"/member/6f1c2b44-9a4e-4c55-8c1f-2b9f0a4d7e11/",
		"/card/6f1c2b44-9a4e-4c55-8c1f-2b9f0a4d7e11/expired/",
		"/member/6f1c2b44-9a4e-4c55-8c1f-2b9f0a4d7e11/qr.png",
	} {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: url})

		assert.Equal(t, http.StatusNotFound, recorder.Code, url)
		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "CARD-001", errorResponse.Code, url)
	}
}

func TestCard_QRPNG(t *testing.T) {
	db, router, _ := setupTestEnvironment(t)
	m := seedWithExpiry(t, db, "GC-001", "2026-01-01")

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/member/" + m.PublicID + "/qr.png"})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(recorder.Body.Bytes()))
	assert.NoError(t, err)
}

func TestCard_Photo(t *testing.T) {
	db, router, photos := setupTestEnvironment(t)
	m := seedWithExpiry(t, db, "GC-001", "2026-01-01")

	t.Run("no photo", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/member/" + m.PublicID + "/photo"})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("stored photo", func(t *testing.T) {
		// Given
		objectPath := "member_photos/gc-001-test.png"
		photos.Objects[objectPath] = []byte("png-bytes")
		photos.Types[objectPath] = "image/png"
		require.NoError(t, db.Model(m).Update("photo", objectPath).Error)

		// When
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/member/" + m.PublicID + "/photo"})

		// Then
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
		assert.Equal(t, "png-bytes", recorder.Body.String())

		response := get(t, router, "/member/"+m.PublicID+"/")
		require.NotNil(t, response.PhotoURL)
		assert.Equal(t, "/member/"+m.PublicID+"/photo", *response.PhotoURL)
	})
}
