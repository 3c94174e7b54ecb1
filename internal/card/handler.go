package card

import (
	"fmt"
	"net/http"

	"github.com/gcclub/membercard/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const publicIDParam = "publicId"

// ExpiredPath is where a card link goes once the membership has lapsed.
func ExpiredPath(publicID string, viewOnly bool) string {
	if viewOnly {
		return fmt.Sprintf("/card/%s/expired/", publicID)
	}
	return fmt.Sprintf("/member/%s/expired/", publicID)
}

type CardHandler struct {
	cardService *CardService
}

func NewCardHandler(cardService *CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

func (h *CardHandler) Card(c *gin.Context) {
	h.card(c, false)
}

// ViewOnly is the card without navigation, for sharing.
func (h *CardHandler) ViewOnly(c *gin.Context) {
	h.card(c, true)
}

func (h *CardHandler) card(c *gin.Context, viewOnly bool) {
	publicID := c.Param(publicIDParam)

	response, expired, err := h.cardService.Card(c.Request.Context(), publicID, viewOnly)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	if expired {
		c.Redirect(http.StatusFound, ExpiredPath(publicID, viewOnly))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CardHandler) Expired(c *gin.Context) {
	h.expired(c, false)
}

func (h *CardHandler) ExpiredViewOnly(c *gin.Context) {
	h.expired(c, true)
}

func (h *CardHandler) expired(c *gin.Context, viewOnly bool) {
	response, err := h.cardService.Expired(c.Request.Context(), c.Param(publicIDParam), viewOnly)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *CardHandler) Print(c *gin.Context) {
	response, err := h.cardService.Print(c.Request.Context(), c.Param(publicIDParam))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *CardHandler) QR(c *gin.Context) {
	png, err := h.cardService.QR(c.Request.Context(), c.Param(publicIDParam))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *CardHandler) Photo(c *gin.Context) {
	photo, err := h.cardService.Photo(c.Request.Context(), c.Param(publicIDParam))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	defer photo.Body.Close()

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, photo.Size, contentType, photo.Body, nil)
}
