package memory

import (
	"context"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
)

type postRepo struct {
	db *database
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[post.AuthorID]; !ok {
		return nil, repository.ErrNotFound
	}
	if post.GroupID != nil {
		if _, ok := r.db.groups[*post.GroupID]; !ok {
			return nil, repository.ErrNotFound
		}
	}

	r.db.lastPostID++
	post.ID = r.db.lastPostID
	stored := post
	r.db.posts[post.ID] = &stored

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	if post.GroupID != nil {
		if _, ok := r.db.groups[*post.GroupID]; !ok {
			return repository.ErrNotFound
		}
	}

	stored := post
	r.db.posts[post.ID] = &stored
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.posts[id]; !ok {
		return repository.ErrNotFound
	}

	r.db.deletePost(id)
	return nil
}

func (r *postRepo) FindAuthorPost(ctx context.Context, authorID uuid.UUID, id int64) (*model.FullPost, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	post, ok := r.db.posts[id]
	if !ok || post.AuthorID != authorID {
		return nil, repository.ErrNotFound
	}

	return r.db.fullPost(post), nil
}

func (r *postRepo) Find(ctx context.Context, filter repository.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	posts := r.db.filtered(filter)

	if offset >= len(posts) {
		return []*model.FullPost{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}

	result := make([]*model.FullPost, 0, end-offset)
	for _, post := range posts[offset:end] {
		result = append(result, r.db.fullPost(post))
	}

	return result, nil
}

func (r *postRepo) Count(ctx context.Context, filter repository.PostFilter) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for _, post := range r.db.posts {
		if r.db.matches(post, filter) {
			count++
		}
	}

	return count, nil
}
