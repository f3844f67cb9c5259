package service

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
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

const (
	postImagesPrefix   = "posts/"
	publishTimeout     = 5 * time.Second
	requiredFieldError = "This field is required."
	invalidGroupError  = "Select a valid group."
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type postService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	listing  *cache.Listing
	media    MediaStorage
	events   events.Publisher
	metrics  *metrics.Metrics
	now      func() time.Time
	pageSize int
}

func newPostService(deps Deps) Post {
	return &postService{
		logger:   deps.Logger,
		repo:     deps.Repo,
		listing:  deps.Listing,
		media:    deps.Media,
		events:   deps.Events,
		metrics:  deps.Metrics,
		now:      deps.Now,
		pageSize: deps.PageSize,
	}
}

func (s *postService) Create(ctx context.Context, user *model.CachedUser, input dto.CreatePostRequest, image *dto.Image) (*model.Post, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	if err := s.validatePostInput(ctx, input.Text, input.GroupID); err != nil {
		return nil, err
	}

	post := model.Post{
		AuthorID: user.ID,
		GroupID:  input.GroupID,
		Text:     input.Text,
		PubDate:  s.now(),
	}

	if image != nil {
		key, err := s.uploadImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		post.Image = &key
	}

	createdPost, err := s.repo.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", user.ID.String(), err.Error())
		if post.Image != nil {
			s.removeImage(ctx, *post.Image)
		}
		return nil, ErrInternal
	}

	s.metrics.PostCreated()
	s.publishPostCreated(createdPost)

	return createdPost, nil
}

func (s *postService) publishPostCreated(post *model.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	msg := dto.PostCreatedMsg{
		PostID:    post.ID,
		UserID:    post.AuthorID,
		GroupID:   post.GroupID,
		CreatedAt: post.PubDate,
	}
	if err := s.events.PublishPostCreated(ctx, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%d) created event: %s", post.ID, err.Error())
	}
}

func (s *postService) Edit(ctx context.Context, user *model.CachedUser, username string, postID int64, input dto.EditPostRequest, image *dto.Image) (*model.FullPost, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	post, err := findAuthorPost(ctx, s.logger, s.repo, username, postID)
	if err != nil {
		return nil, err
	}

	if post.Post.AuthorID != user.ID {
		return nil, ErrForbidden
	}

	if err := s.validatePostInput(ctx, input.Text, input.GroupID); err != nil {
		return nil, err
	}

	updated := post.Post
	updated.Text = input.Text
	updated.GroupID = input.GroupID
	updated.PubDate = s.now()

	var oldImage *string
	if image != nil {
		key, err := s.uploadImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		oldImage = updated.Image
		updated.Image = &key
	}

	if err := s.repo.Post.Update(ctx, updated); err != nil {
		if image != nil {
			s.removeImage(ctx, *updated.Image)
		}

		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if oldImage != nil {
		s.removeImage(ctx, *oldImage)
	}

	return findAuthorPost(ctx, s.logger, s.repo, username, postID)
}

func (s *postService) Delete(ctx context.Context, postID int64) error {
	if err := s.repo.Post.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to delete post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) ListGlobal(ctx context.Context, page int) (*model.Page[*model.FullPost], error) {
	load := func(ctx context.Context) (*model.Page[*model.FullPost], error) {
		return s.paginate(ctx, repository.PostFilter{}, page)
	}

	if s.listing == nil {
		return load(ctx)
	}

	return s.listing.GetOrLoad(ctx, page, load)
}

func (s *postService) ClearListingCache(ctx context.Context) error {
	if s.listing == nil {
		return nil
	}

	if err := s.listing.Clear(ctx); err != nil {
		s.logger.Sugar().Errorf("failed to clear listing cache: %s", err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) ListByGroup(ctx context.Context, slug string, page int) (*dto.GroupPosts, error) {
	group, err := s.repo.Group.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find group(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	posts, err := s.paginate(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}

	return &dto.GroupPosts{Group: *group, Page: posts}, nil
}

func (s *postService) ListByAuthor(ctx context.Context, viewer *model.CachedUser, username string, page int) (*dto.Profile, error) {
	author, err := findAuthor(ctx, s.logger, s.repo, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.paginate(ctx, repository.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	followers, err := s.repo.Follow.CountFollowers(ctx, author.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count author(%s) followers: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	following, err := s.repo.Follow.CountFollowing(ctx, author.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count author(%s) followings: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	isFollowing := false
	if viewer != nil && viewer.ID != author.ID {
		isFollowing, err = s.repo.Follow.Exists(ctx, viewer.ID, author.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", viewer.ID.String(), author.ID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	return &dto.Profile{
		Author:      author.Author(),
		PostsCount:  posts.TotalCount,
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
		Page:        posts,
	}, nil
}

func (s *postService) ListSubscriptionFeed(ctx context.Context, user *model.CachedUser, page int) (*model.Page[*model.FullPost], error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	return s.paginate(ctx, repository.PostFilter{FollowerID: &user.ID}, page)
}

func (s *postService) GetSinglePost(ctx context.Context, username string, postID int64) (*dto.SinglePost, error) {
	post, err := findAuthorPost(ctx, s.logger, s.repo, username, postID)
	if err != nil {
		return nil, err
	}

	postsCount, err := s.repo.Post.Count(ctx, repository.PostFilter{AuthorID: &post.Post.AuthorID})
	if err != nil {
		s.logger.Sugar().Errorf("failed to count author(%s) posts: %s", post.Post.AuthorID.String(), err.Error())
		return nil, ErrInternal
	}

	comments, err := s.repo.Comment.FindPostComments(ctx, post.Post.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", post.Post.ID, err.Error())
		return nil, ErrInternal
	}
	if comments == nil {
		comments = []*model.FullComment{}
	}

	return &dto.SinglePost{
		Post:       *post,
		PostsCount: postsCount,
		Comments:   comments,
	}, nil
}

func (s *postService) paginate(ctx context.Context, filter repository.PostFilter, page int) (*model.Page[*model.FullPost], error) {
	total, err := s.repo.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts: %s", err.Error())
		return nil, ErrInternal
	}

	bounds := computePage(page, total, s.pageSize)

	posts, err := s.repo.Post.Find(ctx, filter, s.pageSize, bounds.offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts(page %d): %s", bounds.number, err.Error())
		return nil, ErrInternal
	}

	return newPage(posts, bounds, total), nil
}

func (s *postService) validatePostInput(ctx context.Context, text string, groupID *int64) error {
	if strings.TrimSpace(text) == "" {
		return newValidationError("text", requiredFieldError)
	}

	if groupID == nil {
		return nil
	}

	if _, err := s.repo.Group.FindByID(ctx, *groupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newValidationError("group", invalidGroupError)
		}

		s.logger.Sugar().Errorf("failed to find group(%d): %s", *groupID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) uploadImage(ctx context.Context, image dto.Image) (string, error) {
	if s.media == nil {
		return "", ErrMediaUnavailable
	}

	ext := strings.ToLower(filepath.Ext(image.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", ErrFileMustHaveAValidExtension
	}

	contentType := http.DetectContentType(image.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrFileMustBeImage
	}

	key := postImagesPrefix + uuid.NewString() + ext
	if err := s.media.Put(ctx, key, contentType, image.Data); err != nil {
		s.logger.Sugar().Errorf("failed to upload post image(%s): %s", key, err.Error())
		return "", ErrFailedToUploadPostImage
	}

	return key, nil
}

func (s *postService) removeImage(ctx context.Context, key string) {
	if err := s.media.Remove(ctx, key); err != nil {
		s.logger.Sugar().Errorf("failed to remove post image(%s): %s", key, err.Error())
	}
}
