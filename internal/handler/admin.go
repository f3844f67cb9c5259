package handler

import (
	"net/http"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) adminGroupsCreate(c *gin.Context) {
	var input dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdGroup, err := h.services.Group.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdGroup)
}

func (h *Handler) adminGroupsDelete(c *gin.Context) {
	if err := h.services.Group.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) adminPostsDelete(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) adminCacheClear(c *gin.Context) {
	if err := h.services.Post.ClearListingCache(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
