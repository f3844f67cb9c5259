package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authMiddleware sends anonymous callers to the login page and remembers
// where they were going.
func (h *Handler) authMiddleware(c *gin.Context) {
	user, err := h.getUserFromAccessToken(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		if errors.Is(err, errNotAuthorized) {
			c.Redirect(http.StatusFound, h.loginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		writeError(c, err)
		c.Abort()
		return
	}

	c.Set(cachedUserKey, user)

	c.Next()
}

func (h *Handler) loginURL(next string) string {
	login := h.cfg.Auth.LoginURL
	if login == "" {
		login = "/auth/login"
	}

	separator := "?"
	if strings.Contains(login, "?") {
		separator = "&"
	}

	return login + separator + "next=" + url.QueryEscape(next)
}

// getUserFromAccessToken returns errNotAuthorized for a missing or invalid
// bearer token.
func (h *Handler) getUserFromAccessToken(ctx context.Context, header string) (*model.CachedUser, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errNotAuthorized
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return nil, errNotAuthorized
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(h.cfg.Auth.AccessSecret))
	if err != nil {
		return nil, errNotAuthorized
	}

	claimed, err := getUserDataFromClaims(claims)
	if err != nil {
		return nil, errNotAuthorized
	}

	return h.services.UserCache.CreateOrGet(ctx, *claimed)
}

func getUserDataFromClaims(claims jwt.MapClaims) (*model.CachedUser, error) {
	idString, _ := claims["id"].(string)
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, errInvalidClaims
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return nil, errInvalidClaims
	}

	displayName, _ := claims["display_name"].(string)
	avatarURL, _ := claims["avatar_url"].(string)
	role, _ := claims["role"].(string)

	return &model.CachedUser{
		ID:          id,
		Username:    username,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		Role:        strings.ToLower(role),
	}, nil
}
