package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidClaims = errors.New("token claims are incomplete")
	errInvalidPostID = errors.New("invalid post ID")
	errRouteNotFound = errors.New("route not found")
	errImageTooLarge = errors.New("image is too large")
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrInvalidOperation, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrAlreadyExists, http.StatusConflict},
	{service.ErrMediaUnavailable, http.StatusServiceUnavailable},
	{service.ErrFileMustBeImage, http.StatusBadRequest},
	{service.ErrFileMustHaveAValidExtension, http.StatusBadRequest},
	{service.ErrFailedToUploadPostImage, http.StatusBadGateway},
}

func writeError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(validationErr.Field, validationErr.Message))
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, dto.NewBasicResponse(false, err.Error()))
			return
		}
	}

	c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
}
