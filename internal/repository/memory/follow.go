package memory

import (
	"context"
	"errors"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
)

var errSelfFollow = errors.New("follow edge must connect two different users")

type followRepo struct {
	db *database
}

func (r *followRepo) Create(ctx context.Context, follow model.Follow) error {
	// Mirrors the follows_user_not_author check constraint.
	if follow.UserID == follow.AuthorID {
		return errSelfFollow
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[follow.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.db.users[follow.AuthorID]; !ok {
		return repository.ErrNotFound
	}

	key := followKey{userID: follow.UserID, authorID: follow.AuthorID}
	if _, ok := r.db.follows[key]; !ok {
		r.db.follows[key] = follow
	}

	return nil
}

func (r *followRepo) Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.follows, followKey{userID: userID, authorID: authorID})
	return nil
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.follows[followKey{userID: userID, authorID: authorID}]
	return ok, nil
}

func (r *followRepo) CountFollowers(ctx context.Context, authorID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for key := range r.db.follows {
		if key.authorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *followRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for key := range r.db.follows {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}
