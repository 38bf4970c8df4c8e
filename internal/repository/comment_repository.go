package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echonet/echonet/internal/domain"
)

// CommentRepository persists post comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a Postgres-backed implementation.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (post_id, author_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, comment.PostID, comment.AuthorID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `
        SELECT id, post_id, author_id, content, created_at
        FROM comments WHERE id=$1`

	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, post_id, author_id, content, created_at
        FROM comments WHERE post_id=$1
        ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
