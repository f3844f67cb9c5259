package postgres

import (
	"context"

	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type groupRepo struct {
	db *pgxpool.Pool
}

func newGroupRepo(db *pgxpool.Pool) repository.Group {
	return &groupRepo{
		db: db,
	}
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO groups(title, slug, description) VALUES($1, $2, $3) RETURNING id",
		group.Title,
		group.Slug,
		group.Description,
	).Scan(&group.ID); err != nil {
		return nil, translateErr(err)
	}

	return &group, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	return r.findOne(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g WHERE g.id = $1", id)
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return r.findOne(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g WHERE g.slug = $1", slug)
}

func (r *groupRepo) findOne(ctx context.Context, query string, arg interface{}) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
	); err != nil {
		return nil, translateErr(err)
	}

	return &group, nil
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	rows, err := r.db.Query(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g ORDER BY g.title ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*model.Group{}
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, err
		}

		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// DeleteBySlug removes the group; posts in it (and their comments) go with it
// through the ON DELETE CASCADE foreign keys.
func (r *groupRepo) DeleteBySlug(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM groups WHERE slug = $1", slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
