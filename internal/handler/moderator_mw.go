package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) moderatorMiddleware(c *gin.Context) {
	user, err := h.getUserFromAccessToken(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		if errors.Is(err, errNotAuthorized) {
			c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
			c.Abort()
			return
		}

		writeError(c, err)
		c.Abort()
		return
	}

	if user.Role != "mod" && user.Role != "admin" {
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, service.ErrForbidden.Error()))
		c.Abort()
		return
	}

	c.Set(cachedUserKey, user)

	c.Next()
}
