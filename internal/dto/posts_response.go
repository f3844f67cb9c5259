package dto

import "github.com/BloggingApp/feed-service/internal/model"

type GroupPosts struct {
	Group model.Group                  `json:"group"`
	Page  *model.Page[*model.FullPost] `json:"page"`
}

type Profile struct {
	Author      model.UserAuthor             `json:"author"`
	PostsCount  int                          `json:"posts_count"`
	Followers   int                          `json:"followers"`
	Following   int                          `json:"following"`
	IsFollowing bool                         `json:"is_following"`
	Page        *model.Page[*model.FullPost] `json:"page"`
}

type SinglePost struct {
	Post       model.FullPost       `json:"post"`
	PostsCount int                  `json:"posts_count"`
	Comments   []*model.FullComment `json:"comments"`
}
