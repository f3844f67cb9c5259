package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostCreatedMsg struct {
	PostID    int64     `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	GroupID   *int64    `json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
}
