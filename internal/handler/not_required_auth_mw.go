package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	user, err := h.getUserFromAccessToken(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		if !errors.Is(err, errNotAuthorized) {
			h.logger.Sugar().Errorf("failed to resolve optional user: %s", err.Error())
		}
		c.Next()
		return
	}

	c.Set(cachedUserKey, user)

	c.Next()
}
