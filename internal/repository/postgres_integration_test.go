package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/persistence"
)

// openTestPool connects to ECHONET_TEST_POSTGRES_DSN and applies the
// embedded migrations. Tests are skipped when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("ECHONET_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ECHONET_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	return pool
}

func TestPostgresLikeToggle(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	posts := NewPostRepository(pool)
	likes := NewLikeRepository(pool)

	author := int64(1)
	post := &domain.Post{AuthorID: &author, Title: "hello", Content: "first post"}
	require.NoError(t, posts.Create(ctx, post))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM posts WHERE id=$1`, post.ID)
	})

	liked, err := likes.Toggle(ctx, post.ID, 7)
	require.NoError(t, err)
	assert.True(t, liked)

	_, err = pool.Exec(ctx, `INSERT INTO likes (post_id, user_id) VALUES ($1, $2)`, post.ID, 7)
	assert.Error(t, err, "primary key allows one like per pair")

	liked, err = likes.Toggle(ctx, post.ID, 7)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = likes.Toggle(ctx, post.ID, 8)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := likes.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikesCount)
}

func TestPostgresCommentLifecycle(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	posts := NewPostRepository(pool)
	comments := NewCommentRepository(pool)

	post := &domain.Post{Title: "t", Content: "c"}
	require.NoError(t, posts.Create(ctx, post))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM posts WHERE id=$1`, post.ID)
	})

	first := &domain.Comment{PostID: post.ID, AuthorID: 3, Content: "one"}
	second := &domain.Comment{PostID: post.ID, AuthorID: 4, Content: "two"}
	require.NoError(t, comments.Create(ctx, first))
	require.NoError(t, comments.Create(ctx, second))

	listed, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)

	require.NoError(t, comments.Delete(ctx, first.ID))
	assert.Error(t, comments.Delete(ctx, first.ID))
}
