package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeRepository persists (post, user) like pairs.
type LikeRepository interface {
	Toggle(ctx context.Context, postID, userID int64) (bool, error)
	Exists(ctx context.Context, postID, userID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}

// likeDB is the subset of *pgxpool.Pool the like repository needs.
type likeDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type likeRepository struct {
	pool likeDB
}

// NewLikeRepository returns a Postgres-backed implementation.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

// Toggle removes an existing like or adds a missing one and reports whether
// the pair is liked afterwards.
func (r *likeRepository) Toggle(ctx context.Context, postID, userID int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
	if err != nil {
		return false, err
	}
	liked := false
	if cmd.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, userID); err != nil {
			return false, err
		}
		liked = true
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return liked, nil
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE post_id=$1 AND user_id=$2)`, postID, userID).Scan(&exists)
	return exists, err
}

func (r *likeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id=$1`, postID).Scan(&count)
	return count, err
}
