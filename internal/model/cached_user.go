package model

import "github.com/google/uuid"

type CachedUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        string    `json:"-"`
}

type UserAuthor struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

func (u CachedUser) Author() UserAuthor {
	author := UserAuthor{
		ID:       u.ID,
		Username: u.Username,
	}
	if u.DisplayName != "" {
		author.DisplayName = &u.DisplayName
	}
	if u.AvatarURL != "" {
		author.AvatarURL = &u.AvatarURL
	}
	return author
}
