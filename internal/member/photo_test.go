package member_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/model"
	"github.com/gcclub/membercard/internal/shared/storage"
	"github.com/gcclub/membercard/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadPhoto(t *testing.T, env *testEnv, url, token, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func TestUploadPhoto_ReplacesPrevious(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	testutil.SeedMember(t, env.db, "GC-001", model.RoleMember, today)
	staff := testutil.SeedMember(t, env.db, "GC-002", model.RoleStaff, today)

	// When: two photos are uploaded in turn
	first := uploadPhoto(t, env, "/api/v1/members/GC-001/photo", tokenOf(staff), "a.png", "image/png", []byte("png-1"))
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	second := uploadPhoto(t, env, "/api/v1/members/GC-001/photo", tokenOf(staff), "b.jpeg", "image/jpeg", []byte("jpeg-2"))
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	// Then: only the second object remains and the member points at it
	var stored model.Member
	require.NoError(t, env.db.Where("member_id = ?", "GC-001").First(&stored).Error)
	require.NotNil(t, stored.Photo)
	assert.True(t, strings.HasPrefix(*stored.Photo, storage.PhotoPrefix+"gc-001-"))
	assert.True(t, strings.HasSuffix(*stored.Photo, ".jpg"))
	assert.Len(t, env.photos.Objects, 1)
	assert.Equal(t, []byte("jpeg-2"), env.photos.Objects[*stored.Photo])
	assert.Len(t, env.photos.Removed, 1)

	var resp member.MemberResponse
	testutil.ParseResponse(t, second, &resp)
	require.NotNil(t, resp.PhotoURL)
	assert.Equal(t, "/member/"+stored.PublicID+"/photo", *resp.PhotoURL)
}

func TestUploadPhoto_RejectsNonImages(t *testing.T) {
	env := setupTestEnvironment(t)
	plain := testutil.SeedMember(t, env.db, "GC-001", model.RoleMember, today)

	recorder := uploadPhoto(t, env, "/api/v1/profile/photo", tokenOf(plain), "notes.txt", "text/plain", []byte("hello"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, env.photos.Objects)
}

func TestUploadPhoto_OwnProfile(t *testing.T) {
	env := setupTestEnvironment(t)
	plain := testutil.SeedMember(t, env.db, "GC-001", model.RoleMember, today)

	recorder := uploadPhoto(t, env, "/api/v1/profile/photo", tokenOf(plain), "me.webp", "image/webp", []byte("webp"))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Len(t, env.photos.Objects, 1)
}
