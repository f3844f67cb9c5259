package handler

import (
	"net/http"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Add(c.Request.Context(), user, c.Param("username"), postID, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdComment)
}

func (h *Handler) commentsList(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	comments, err := h.services.Comment.List(c.Request.Context(), c.Param("username"), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
