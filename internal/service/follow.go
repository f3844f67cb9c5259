package service

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type followService struct {
	logger  *zap.Logger
	repo    *repository.Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func newFollowService(deps Deps) Follow {
	return &followService{
		logger:  deps.Logger,
		repo:    deps.Repo,
		metrics: deps.Metrics,
		now:     deps.Now,
	}
}

// Follow subscribes user to the author's posts. Following twice is a no-op.
func (s *followService) Follow(ctx context.Context, user *model.CachedUser, username string) error {
	if user == nil {
		return ErrUnauthorized
	}

	author, err := findAuthor(ctx, s.logger, s.repo, username)
	if err != nil {
		return err
	}

	if author.ID == user.ID {
		return ErrSelfFollow
	}

	follow := model.Follow{
		UserID:    user.ID,
		AuthorID:  author.ID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Follow.Create(ctx, follow); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to create follow(%s -> %s): %s", user.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}

	s.metrics.FollowAction("follow")

	return nil
}

// Unfollow removes the subscription if there is one.
func (s *followService) Unfollow(ctx context.Context, user *model.CachedUser, username string) error {
	if user == nil {
		return ErrUnauthorized
	}

	author, err := findAuthor(ctx, s.logger, s.repo, username)
	if err != nil {
		return err
	}

	if err := s.repo.Follow.Delete(ctx, user.ID, author.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s): %s", user.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}

	s.metrics.FollowAction("unfollow")

	return nil
}

func (s *followService) IsFollowing(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	if userID == authorID {
		return false, nil
	}

	exists, err := s.repo.Follow.Exists(ctx, userID, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", userID.String(), authorID.String(), err.Error())
		return false, ErrInternal
	}

	return exists, nil
}

func (s *followService) CountFollowers(ctx context.Context, authorID uuid.UUID) (int, error) {
	count, err := s.repo.Follow.CountFollowers(ctx, authorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count user(%s) followers: %s", authorID.String(), err.Error())
		return 0, ErrInternal
	}

	return count, nil
}

func (s *followService) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.Follow.CountFollowing(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count user(%s) followings: %s", userID.String(), err.Error())
		return 0, ErrInternal
	}

	return count, nil
}
