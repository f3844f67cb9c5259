// Package memory keeps every entity in process memory. It backs the
// "memory" storage mode and the service and handler tests.
package memory

import (
	"sort"
	"sync"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
)

type followKey struct {
	userID   uuid.UUID
	authorID uuid.UUID
}

type database struct {
	mu sync.RWMutex

	users    map[uuid.UUID]*model.CachedUser
	groups   map[int64]*model.Group
	posts    map[int64]*model.Post
	comments map[int64]*model.Comment
	follows  map[followKey]model.Follow

	lastGroupID   int64
	lastPostID    int64
	lastCommentID int64
}

func New() *repository.Repository {
	db := &database{
		users:    make(map[uuid.UUID]*model.CachedUser),
		groups:   make(map[int64]*model.Group),
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64]*model.Comment),
		follows:  make(map[followKey]model.Follow),
	}

	return &repository.Repository{
		Post:      &postRepo{db: db},
		Comment:   &commentRepo{db: db},
		Group:     &groupRepo{db: db},
		Follow:    &followRepo{db: db},
		UserCache: &userCacheRepo{db: db},
	}
}

// deletePost removes the post and its comments. Callers hold the write lock.
func (db *database) deletePost(id int64) {
	delete(db.posts, id)
	for commentID, comment := range db.comments {
		if comment.PostID == id {
			delete(db.comments, commentID)
		}
	}
}

// fullPost joins the author and group. Callers hold at least the read lock.
func (db *database) fullPost(post *model.Post) *model.FullPost {
	full := &model.FullPost{Post: *post}
	if author, ok := db.users[post.AuthorID]; ok {
		full.Author = author.Author()
	} else {
		full.Author = model.UserAuthor{ID: post.AuthorID}
	}
	if post.GroupID != nil {
		if group, ok := db.groups[*post.GroupID]; ok {
			full.Group = group.Ref()
		}
	}
	return full
}

func (db *database) matches(post *model.Post, filter repository.PostFilter) bool {
	if filter.GroupID != nil && (post.GroupID == nil || *post.GroupID != *filter.GroupID) {
		return false
	}
	if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.FollowerID != nil {
		if _, ok := db.follows[followKey{userID: *filter.FollowerID, authorID: post.AuthorID}]; !ok {
			return false
		}
	}
	return true
}

// filtered returns matching posts in listing order. Callers hold at least the read lock.
func (db *database) filtered(filter repository.PostFilter) []*model.Post {
	posts := make([]*model.Post, 0, len(db.posts))
	for _, post := range db.posts {
		if db.matches(post, filter) {
			posts = append(posts, post)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Before(*posts[j])
	})

	return posts
}
