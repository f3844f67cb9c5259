package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectFullPost = `SELECT
p.id, p.author_id, p.group_id, p.text, p.image, p.pub_date, u.username, u.display_name, u.avatar_url, g.slug, g.title
FROM posts p
JOIN cached_users u ON p.author_id = u.id
LEFT JOIN groups g ON p.group_id = g.id`

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) repository.Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, group_id, text, image, pub_date) VALUES($1, $2, $3, $4, $5) RETURNING id",
		post.AuthorID,
		post.GroupID,
		post.Text,
		post.Image,
		post.PubDate,
	).Scan(&post.ID); err != nil {
		return nil, translateErr(err)
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE posts SET group_id = $1, text = $2, image = $3, pub_date = $4 WHERE id = $5",
		post.GroupID,
		post.Text,
		post.Image,
		post.PubDate,
		post.ID,
	)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *postRepo) FindAuthorPost(ctx context.Context, authorID uuid.UUID, id int64) (*model.FullPost, error) {
	row := r.db.QueryRow(ctx, selectFullPost+" WHERE p.author_id = $1 AND p.id = $2", authorID, id)

	post, err := scanFullPost(row)
	if err != nil {
		return nil, translateErr(err)
	}

	return post, nil
}

func (r *postRepo) Find(ctx context.Context, filter repository.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	where, args := buildPostFilter(filter)
	args = append(args, limit, offset)

	query := selectFullPost + where +
		" ORDER BY p.pub_date DESC, p.id DESC" +
		" LIMIT $" + strconv.Itoa(len(args)-1) +
		" OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.FullPost, 0, limit)
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter repository.PostFilter) (int, error) {
	where, args := buildPostFilter(filter)

	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func buildPostFilter(filter repository.PostFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conditions = append(conditions, "p.group_id = $"+strconv.Itoa(len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, "p.author_id = $"+strconv.Itoa(len(args)))
	}
	if filter.FollowerID != nil {
		args = append(args, *filter.FollowerID)
		conditions = append(conditions, "p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $"+strconv.Itoa(len(args))+")")
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanFullPost(row rowScanner) (*model.FullPost, error) {
	var (
		post       model.FullPost
		groupSlug  *string
		groupTitle *string
	)
	if err := row.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.GroupID,
		&post.Post.Text,
		&post.Post.Image,
		&post.Post.PubDate,
		&post.Author.Username,
		&post.Author.DisplayName,
		&post.Author.AvatarURL,
		&groupSlug,
		&groupTitle,
	); err != nil {
		return nil, err
	}

	post.Author.ID = post.Post.AuthorID
	if post.Post.GroupID != nil && groupSlug != nil {
		post.Group = &model.GroupRef{
			ID:    *post.Post.GroupID,
			Slug:  *groupSlug,
			Title: *groupTitle,
		}
	}

	return &post, nil
}
