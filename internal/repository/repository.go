package repository

import (
	"context"
	"errors"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// PostFilter narrows a post listing. Nil fields do not filter.
type PostFilter struct {
	GroupID  *int64
	AuthorID *uuid.UUID
	// FollowerID selects posts of every author followed by this user.
	FollowerID *uuid.UUID
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	Update(ctx context.Context, post model.Post) error
	Delete(ctx context.Context, id int64) error
	FindAuthorPost(ctx context.Context, authorID uuid.UUID, id int64) (*model.FullPost, error)
	Find(ctx context.Context, filter PostFilter, limit int, offset int) ([]*model.FullPost, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
}

type Group interface {
	Create(ctx context.Context, group model.Group) (*model.Group, error)
	FindByID(ctx context.Context, id int64) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type Follow interface {
	// Create stores the edge; an existing edge is left untouched.
	Create(ctx context.Context, follow model.Follow) error
	Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error
	Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, authorID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	FindByUsername(ctx context.Context, username string) (*model.CachedUser, error)
}

type Repository struct {
	Post
	Comment
	Group
	Follow
	UserCache
}

// AllowedUserCacheFields lists the columns UserCache.Update may touch.
var AllowedUserCacheFields = []string{"username", "display_name", "avatar_url"}

var ErrFieldsNotAllowedToUpdate = errors.New("fields are not allowed to update")

func CheckUserCacheUpdates(updates map[string]interface{}) error {
	allowedFieldsSet := make(map[string]struct{}, len(AllowedUserCacheFields))
	for _, field := range AllowedUserCacheFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field, value := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
		if _, ok := value.(string); !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}

	return nil
}
