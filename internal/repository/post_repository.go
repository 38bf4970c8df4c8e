package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echonet/echonet/internal/domain"
)

// PostRepository persists posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, limit, offset int) ([]domain.Post, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postSelect = `
        SELECT p.id, p.author_id, p.title, p.content, p.created_at,
               (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
               (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
        FROM posts p`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (author_id, title, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, post.AuthorID, post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	rows, err := r.pool.Query(ctx, postSelect+` WHERE p.id=$1`, id)
	if err != nil {
		return nil, err
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &posts[0], nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *postRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	defer rows.Close()
	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Content,
			&post.CreatedAt,
			&post.LikesCount,
			&post.CommentsCount,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
