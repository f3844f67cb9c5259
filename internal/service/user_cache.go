package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userCacheService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserCacheService(deps Deps) UserCache {
	return &userCacheService{
		logger: deps.Logger,
		repo:   deps.Repo,
	}
}

// CreateOrGet returns the cached copy of the token's user, storing it on
// first sight and refreshing profile fields that changed since.
func (s *userCacheService) CreateOrGet(ctx context.Context, claimed model.CachedUser) (*model.CachedUser, error) {
	cachedUser, err := s.repo.UserCache.FindByID(ctx, claimed.ID)
	if err == nil {
		return s.refresh(ctx, cachedUser, claimed)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find cached user(%s): %s", claimed.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.UserCache.Create(ctx, claimed); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			s.logger.Sugar().Errorf("failed to create cached user(%s): %s", claimed.ID.String(), err.Error())
			return nil, ErrInternal
		}

		// Either a concurrent request stored the same user first, or the
		// username belongs to somebody else.
		cachedUser, err := s.repo.UserCache.FindByID(ctx, claimed.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrAlreadyExists
			}

			s.logger.Sugar().Errorf("failed to find cached user(%s): %s", claimed.ID.String(), err.Error())
			return nil, ErrInternal
		}

		return s.refresh(ctx, cachedUser, claimed)
	}

	user := claimed
	return &user, nil
}

func (s *userCacheService) refresh(ctx context.Context, cachedUser *model.CachedUser, claimed model.CachedUser) (*model.CachedUser, error) {
	updates := profileUpdates(*cachedUser, claimed)
	if len(updates) > 0 {
		if err := s.repo.UserCache.Update(ctx, claimed.ID, updates); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, ErrAlreadyExists
			}

			s.logger.Sugar().Errorf("failed to update cached user(%s): %s", claimed.ID.String(), err.Error())
			return nil, ErrInternal
		}

		cachedUser.Username = claimed.Username
		cachedUser.DisplayName = claimed.DisplayName
		cachedUser.AvatarURL = claimed.AvatarURL
	}

	cachedUser.Role = claimed.Role

	return cachedUser, nil
}

func profileUpdates(cached model.CachedUser, claimed model.CachedUser) map[string]interface{} {
	updates := make(map[string]interface{})
	if cached.Username != claimed.Username {
		updates["username"] = claimed.Username
	}
	if cached.DisplayName != claimed.DisplayName {
		updates["display_name"] = claimed.DisplayName
	}
	if cached.AvatarURL != claimed.AvatarURL {
		updates["avatar_url"] = claimed.AvatarURL
	}
	return updates
}

func (s *userCacheService) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	user, err := s.repo.UserCache.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find cached user(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userCacheService) FindByUsername(ctx context.Context, username string) (*model.CachedUser, error) {
	return findAuthor(ctx, s.logger, s.repo, username)
}
