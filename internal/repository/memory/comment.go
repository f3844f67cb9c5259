package memory

import (
	"context"
	"sort"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
)

type commentRepo struct {
	db *database
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.posts[comment.PostID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.db.users[comment.AuthorID]; !ok {
		return nil, repository.ErrNotFound
	}

	r.db.lastCommentID++
	comment.ID = r.db.lastCommentID
	stored := comment
	r.db.comments[comment.ID] = &stored

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	comments := []*model.FullComment{}
	for _, comment := range r.db.comments {
		if comment.PostID != postID {
			continue
		}

		full := &model.FullComment{Comment: *comment}
		if author, ok := r.db.users[comment.AuthorID]; ok {
			full.Author = author.Author()
		}
		comments = append(comments, full)
	}

	sort.Slice(comments, func(i, j int) bool {
		a, b := comments[i].Comment, comments[j].Comment
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return comments, nil
}
