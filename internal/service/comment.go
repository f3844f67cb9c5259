package service

import (
	"context"
	"strings"
	"time"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"go.uber.org/zap"
)

type commentService struct {
	logger  *zap.Logger
	repo    *repository.Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func newCommentService(deps Deps) Comment {
	return &commentService{
		logger:  deps.Logger,
		repo:    deps.Repo,
		metrics: deps.Metrics,
		now:     deps.Now,
	}
}

func (s *commentService) Add(ctx context.Context, user *model.CachedUser, username string, postID int64, input dto.CreateCommentRequest) (*model.Comment, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	post, err := findAuthorPost(ctx, s.logger, s.repo, username, postID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Text) == "" {
		return nil, newValidationError("text", requiredFieldError)
	}

	comment := model.Comment{
		PostID:    post.Post.ID,
		AuthorID:  user.ID,
		Text:      input.Text,
		CreatedAt: s.now(),
	}

	createdComment, err := s.repo.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", user.ID.String(), post.Post.ID, err.Error())
		return nil, ErrInternal
	}

	s.metrics.CommentCreated()

	return createdComment, nil
}

func (s *commentService) List(ctx context.Context, username string, postID int64) ([]*model.FullComment, error) {
	post, err := findAuthorPost(ctx, s.logger, s.repo, username, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindPostComments(ctx, post.Post.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", post.Post.ID, err.Error())
		return nil, ErrInternal
	}
	if comments == nil {
		comments = []*model.FullComment{}
	}

	return comments, nil
}
