package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"go.uber.org/zap"
)

const (
	maxGroupTitleLength = 200
	maxGroupSlugLength  = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type groupService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newGroupService(deps Deps) Group {
	return &groupService{
		logger: deps.Logger,
		repo:   deps.Repo,
	}
}

func (s *groupService) Create(ctx context.Context, input dto.CreateGroupRequest) (*model.Group, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, newValidationError("title", requiredFieldError)
	}
	if len([]rune(title)) > maxGroupTitleLength {
		return nil, newValidationError("title", "Ensure this value has at most 200 characters.")
	}
	if len(input.Slug) > maxGroupSlugLength || !slugPattern.MatchString(input.Slug) {
		return nil, newValidationError("slug", "Enter a valid slug of at most 50 letters, numbers, underscores or hyphens.")
	}

	group := model.Group{
		Title:       title,
		Slug:        input.Slug,
		Description: input.Description,
	}

	createdGroup, err := s.repo.Group.Create(ctx, group)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyExists
		}

		s.logger.Sugar().Errorf("failed to create group(%s): %s", input.Slug, err.Error())
		return nil, ErrInternal
	}

	return createdGroup, nil
}

func (s *groupService) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	group, err := s.repo.Group.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find group(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	return group, nil
}

func (s *groupService) FindAll(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.repo.Group.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find groups: %s", err.Error())
		return nil, ErrInternal
	}
	if groups == nil {
		groups = []*model.Group{}
	}

	return groups, nil
}

// Delete removes the group together with its posts and their comments.
func (s *groupService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Group.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to delete group(%s): %s", slug, err.Error())
		return ErrInternal
	}

	return nil
}
