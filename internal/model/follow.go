package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: UserID follows AuthorID.
type Follow struct {
	UserID    uuid.UUID `json:"user_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
