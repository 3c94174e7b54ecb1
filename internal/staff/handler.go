package staff

import (
	"net/http"

	sharedContext "github.com/gcclub/membercard/internal/shared/context"
	"github.com/gcclub/membercard/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staffService *StaffService
}

func NewStaffHandler(staffService *StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
	}
}

func (h *StaffHandler) Dashboard(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	response, err := h.staffService.Dashboard(c.Request.Context(), actor)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StaffHandler) Register(c *gin.Context) {
	actor, ok := sharedContext.RequireActor(c)
	if !ok {
		return
	}

	var request RegisterRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.staffService.Register(c.Request.Context(), actor, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
