package member

import (
	"errors"
	"net/http"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) List(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	var request ListRequest
	if !handler.BindQuery(c, &request) {
		return
	}

	response, err := h.memberService.List(c.Request.Context(), actor, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Create(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	var request CreateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), actor, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.Header("Location", MemberListURL)
	c.JSON(http.StatusCreated, response)
}

func (h *MemberHandler) Detail(c *gin.Context) {
	response, err := h.memberService.Detail(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Form(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	response, err := h.memberService.Form(c.Request.Context(), actor, c.Param("memberId"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Update(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	var form MemberForm
	if !handler.BindJSON(c, &form) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), actor, c.Param("memberId"), &form)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) SetActive(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	var request SetActiveRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.SetActive(c.Request.Context(), actor, c.Param("memberId"), *request.IsActive)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteConfirm answers GET on the delete route with the confirmation prompt only.
func (h *MemberHandler) DeleteConfirm(c *gin.Context) {
	response, err := h.memberService.DeleteConfirm(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	response, err := h.memberService.Delete(c.Request.Context(), actor, c.Param("memberId"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	upload, closeFn, ok := bindPhoto(c)
	if !ok {
		return
	}
	defer closeFn()

	response, err := h.memberService.UploadPhoto(c.Request.Context(), actor, c.Param("memberId"), upload)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// bindPhoto reads the "photo" multipart file. On failure the response is already sent.
func bindPhoto(c *gin.Context) (PhotoUpload, func(), bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPhotoSize+1<<20)

	header, err := c.FormFile("photo")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handler.RespondServiceError(c, ErrPhotoTooLarge)
			return PhotoUpload{}, nil, false
		}
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return PhotoUpload{}, nil, false
	}

	file, err := header.Open()
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return PhotoUpload{}, nil, false
	}

	upload := PhotoUpload{
		Body:        file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	return upload, func() { _ = file.Close() }, true
}
