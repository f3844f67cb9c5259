package service

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/feed-service/internal/cache"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/events"
	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Post interface {
	Create(ctx context.Context, user *model.CachedUser, input dto.CreatePostRequest, image *dto.Image) (*model.Post, error)
	Edit(ctx context.Context, user *model.CachedUser, username string, postID int64, input dto.EditPostRequest, image *dto.Image) (*model.FullPost, error)
	Delete(ctx context.Context, postID int64) error
	ListGlobal(ctx context.Context, page int) (*model.Page[*model.FullPost], error)
	ListByGroup(ctx context.Context, slug string, page int) (*dto.GroupPosts, error)
	ListByAuthor(ctx context.Context, viewer *model.CachedUser, username string, page int) (*dto.Profile, error)
	ListSubscriptionFeed(ctx context.Context, user *model.CachedUser, page int) (*model.Page[*model.FullPost], error)
	GetSinglePost(ctx context.Context, username string, postID int64) (*dto.SinglePost, error)
	ClearListingCache(ctx context.Context) error
}

type Comment interface {
	Add(ctx context.Context, user *model.CachedUser, username string, postID int64, input dto.CreateCommentRequest) (*model.Comment, error)
	List(ctx context.Context, username string, postID int64) ([]*model.FullComment, error)
}

type Follow interface {
	Follow(ctx context.Context, user *model.CachedUser, username string) error
	Unfollow(ctx context.Context, user *model.CachedUser, username string) error
	IsFollowing(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, authorID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
}

type Group interface {
	Create(ctx context.Context, input dto.CreateGroupRequest) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
	Delete(ctx context.Context, slug string) error
}

type UserCache interface {
	CreateOrGet(ctx context.Context, claimed model.CachedUser) (*model.CachedUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	FindByUsername(ctx context.Context, username string) (*model.CachedUser, error)
}

// MediaStorage keeps uploaded post images.
type MediaStorage interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Remove(ctx context.Context, key string) error
}

type Deps struct {
	Logger  *zap.Logger
	Repo    *repository.Repository
	Listing *cache.Listing
	// Media is nil when image uploads are disabled.
	Media    MediaStorage
	Events   events.Publisher
	Metrics  *metrics.Metrics
	Now      func() time.Time
	PageSize int
}

type Service struct {
	Post
	Comment
	Follow
	Group
	UserCache
}

func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Events == nil {
		deps.Events = events.NewNoop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.PageSize <= 0 {
		deps.PageSize = DefaultPageSize
	}

	return &Service{
		Post:      newPostService(deps),
		Comment:   newCommentService(deps),
		Follow:    newFollowService(deps),
		Group:     newGroupService(deps),
		UserCache: newUserCacheService(deps),
	}
}

// findAuthor resolves a username through the user cache.
func findAuthor(ctx context.Context, logger *zap.Logger, repo *repository.Repository, username string) (*model.CachedUser, error) {
	author, err := repo.UserCache.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}

		logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	return author, nil
}

func findAuthorPost(ctx context.Context, logger *zap.Logger, repo *repository.Repository, username string, postID int64) (*model.FullPost, error) {
	author, err := findAuthor(ctx, logger, repo, username)
	if err != nil {
		return nil, err
	}

	post, err := repo.Post.FindAuthorPost(ctx, author.ID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}

		logger.Sugar().Errorf("failed to find author(%s) post(%d): %s", author.ID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}
