package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID       int64     `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`
	GroupID  *int64    `json:"group_id"`
	Text     string    `json:"text"`
	Image    *string   `json:"image"`
	PubDate  time.Time `json:"pub_date"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
	Group  *GroupRef  `json:"group"`
}

// Before reports whether p is presented before other in a listing:
// newest first, higher id first on equal timestamps.
func (p Post) Before(other Post) bool {
	if !p.PubDate.Equal(other.PubDate) {
		return p.PubDate.After(other.PubDate)
	}
	return p.ID > other.ID
}
