package memory

import (
	"context"
	"sort"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
)

type groupRepo struct {
	db *database
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.groups {
		if existing.Slug == group.Slug {
			return nil, repository.ErrConflict
		}
	}

	r.db.lastGroupID++
	group.ID = r.db.lastGroupID
	stored := group
	r.db.groups[group.ID] = &stored

	return &group, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	group, ok := r.db.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	found := *group
	return &found, nil
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, group := range r.db.groups {
		if group.Slug == slug {
			found := *group
			return &found, nil
		}
	}

	return nil, repository.ErrNotFound
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	groups := make([]*model.Group, 0, len(r.db.groups))
	for _, group := range r.db.groups {
		found := *group
		groups = append(groups, &found)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})

	return groups, nil
}

func (r *groupRepo) DeleteBySlug(ctx context.Context, slug string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for id, group := range r.db.groups {
		if group.Slug != slug {
			continue
		}

		delete(r.db.groups, id)
		for postID, post := range r.db.posts {
			if post.GroupID != nil && *post.GroupID == id {
				r.db.deletePost(postID)
			}
		}
		return nil
	}

	return repository.ErrNotFound
}
