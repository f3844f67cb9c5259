package handler

import (
	"net/http"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) followCreate(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	if err := h.services.Follow.Follow(c.Request.Context(), user, c.Param("username")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) followDelete(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	if err := h.services.Follow.Unfollow(c.Request.Context(), user, c.Param("username")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
