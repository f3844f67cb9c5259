package handler

import (
	"net/http"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) groupsList(c *gin.Context) {
	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (h *Handler) groupsPosts(c *gin.Context) {
	var input dto.GetPostsRequest
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	groupPosts, err := h.services.Post.ListByGroup(c.Request.Context(), c.Param("slug"), service.ParsePage(input.Page))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, groupPosts)
}
