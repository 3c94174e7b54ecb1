package member

import (
	"net/http"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the self-service area of any signed-in member.
type ProfileHandler struct {
	memberService *MemberService
}

func NewProfileHandler(memberService *MemberService) *ProfileHandler {
	return &ProfileHandler{
		memberService: memberService,
	}
}

func (h *ProfileHandler) Dashboard(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	response, err := h.memberService.Profile(c.Request.Context(), actor)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) Form(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	response, err := h.memberService.ProfileForm(c.Request.Context(), actor)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	var form MemberForm
	if !handler.BindJSON(c, &form) {
		return
	}

	response, err := h.memberService.UpdateProfile(c.Request.Context(), actor, &form)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	upload, closeFn, ok := bindPhoto(c)
	if !ok {
		return
	}
	defer closeFn()

	response, err := h.memberService.UploadProfilePhoto(c.Request.Context(), actor, upload)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// MyCard redirects to the caller's own public card.
func (h *ProfileHandler) MyCard(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	path, err := h.memberService.MyCardPath(c.Request.Context(), actor)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, path)
}
