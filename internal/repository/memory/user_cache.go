package memory

import (
	"context"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
)

type userCacheRepo struct {
	db *database
}

func (r *userCacheRepo) Create(ctx context.Context, cachedUser model.CachedUser) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[cachedUser.ID]; ok {
		return repository.ErrConflict
	}
	for _, user := range r.db.users {
		if user.Username == cachedUser.Username {
			return repository.ErrConflict
		}
	}

	cachedUser.Role = ""
	r.db.users[cachedUser.ID] = &cachedUser
	return nil
}

func (r *userCacheRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	if err := repository.CheckUserCacheUpdates(updates); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil
	}

	updated := *user
	for column, value := range updates {
		switch column {
		case "username":
			updated.Username = value.(string)
		case "display_name":
			updated.DisplayName = value.(string)
		case "avatar_url":
			updated.AvatarURL = value.(string)
		}
	}

	for otherID, other := range r.db.users {
		if otherID != id && other.Username == updated.Username {
			return repository.ErrConflict
		}
	}

	r.db.users[id] = &updated
	return nil
}

func (r *userCacheRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	found := *user
	return &found, nil
}

func (r *userCacheRepo) FindByUsername(ctx context.Context, username string) (*model.CachedUser, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if user.Username == username {
			found := *user
			return &found, nil
		}
	}

	return nil, repository.ErrNotFound
}
