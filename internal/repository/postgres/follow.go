package postgres

import (
	"context"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) repository.Follow {
	return &followRepo{
		db: db,
	}
}

func (r *followRepo) Create(ctx context.Context, follow model.Follow) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(user_id, author_id, created_at) VALUES($1, $2, $3) ON CONFLICT (user_id, author_id) DO NOTHING",
		follow.UserID,
		follow.AuthorID,
		follow.CreatedAt,
	)
	return translateErr(err)
}

func (r *followRepo) Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM follows WHERE user_id = $1 AND author_id = $2", userID, authorID)
	return err
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)",
		userID,
		authorID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *followRepo) CountFollowers(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM follows WHERE author_id = $1", authorID).Scan(&count)
	return count, err
}

func (r *followRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM follows WHERE user_id = $1", userID).Scan(&count)
	return count, err
}
