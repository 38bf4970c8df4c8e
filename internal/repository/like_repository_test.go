package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type likeKey struct{ post, user int64 }

// memLikeDB mimics the likes table: committed rows are visible to new
// transactions, staged rows only after Commit.
type memLikeDB struct {
	rows map[likeKey]bool
	// beforeInsert runs between the DELETE and the INSERT of a toggle.
	beforeInsert func()
	insertErr    error
}

func newMemLikeDB() *memLikeDB {
	return &memLikeDB{rows: map[likeKey]bool{}}
}

func (d *memLikeDB) Begin(context.Context) (pgx.Tx, error) {
	staged := make(map[likeKey]bool, len(d.rows))
	for k, v := range d.rows {
		staged[k] = v
	}
	return &memLikeTx{db: d, staged: staged}, nil
}

func (d *memLikeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	postID := args[0].(int64)
	if strings.Contains(sql, "EXISTS") {
		return memRow{d.rows[likeKey{postID, args[1].(int64)}]}
	}
	count := 0
	for k := range d.rows {
		if k.post == postID {
			count++
		}
	}
	return memRow{count}
}

type memRow struct{ v any }

func (r memRow) Scan(dest ...any) error {
	switch d := dest[0].(type) {
	case *bool:
		*d = r.v.(bool)
	case *int:
		*d = r.v.(int)
	default:
		return errors.New("unsupported scan target")
	}
	return nil
}

type memLikeTx struct {
	pgx.Tx
	db     *memLikeDB
	staged map[likeKey]bool
	closed bool
}

func (t *memLikeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	key := likeKey{args[0].(int64), args[1].(int64)}
	switch {
	case strings.HasPrefix(sql, "DELETE"):
		if t.staged[key] {
			delete(t.staged, key)
			return pgconn.NewCommandTag("DELETE 1"), nil
		}
		return pgconn.NewCommandTag("DELETE 0"), nil
	case strings.HasPrefix(sql, "INSERT"):
		if t.db.beforeInsert != nil {
			t.db.beforeInsert()
			if t.db.rows[key] {
				t.staged[key] = true
			}
		}
		if t.db.insertErr != nil {
			return pgconn.CommandTag{}, t.db.insertErr
		}
		if t.staged[key] {
			if !strings.Contains(sql, "ON CONFLICT DO NOTHING") {
				return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
			}
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		t.staged[key] = true
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.CommandTag{}, errors.New("unexpected statement: " + sql)
}

func (t *memLikeTx) Commit(context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.db.rows = t.staged
	return nil
}

func (t *memLikeTx) Rollback(context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	return nil
}

func TestLikeToggleAlternates(t *testing.T) {
	db := newMemLikeDB()
	repo := &likeRepository{pool: db}
	ctx := context.Background()

	for i, want := range []bool{true, false, true} {
		liked, err := repo.Toggle(ctx, 10, 7)
		require.NoError(t, err)
		assert.Equal(t, want, liked, "toggle %d", i+1)
	}

	exists, err := repo.Exists(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.CountByPost(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLikeToggleKeepsUsersSeparate(t *testing.T) {
	db := newMemLikeDB()
	repo := &likeRepository{pool: db}
	ctx := context.Background()

	_, err := repo.Toggle(ctx, 10, 1)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, 10, 2)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, 11, 1)
	require.NoError(t, err)

	count, err := repo.CountByPost(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLikeToggleConcurrentInsertKeepsOnePair(t *testing.T) {
	db := newMemLikeDB()
	repo := &likeRepository{pool: db}
	ctx := context.Background()

	db.beforeInsert = func() { db.rows[likeKey{10, 7}] = true }

	liked, err := repo.Toggle(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountByPost(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLikeToggleFailureRollsBack(t *testing.T) {
	db := newMemLikeDB()
	repo := &likeRepository{pool: db}
	ctx := context.Background()

	db.insertErr = errors.New("connection reset")
	_, err := repo.Toggle(ctx, 10, 7)
	require.Error(t, err)

	exists, err := repo.Exists(ctx, 10, 7)
	require.NoError(t, err)
	assert.False(t, exists)
}
