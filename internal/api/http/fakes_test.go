package http

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/repository"
)

// memoryStore backs every repository interface with maps for router tests.
type memoryStore struct {
	mu       sync.Mutex
	users    []domain.User
	posts    []domain.Post
	likes    map[[2]int64]bool
	comments []domain.Comment
	seq      int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{likes: map[[2]int64]bool{}}
}

func (m *memoryStore) nextID() int64 {
	m.seq++
	return m.seq
}

type memUsers struct{ *memoryStore }

func (r memUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID()
	user.CreatedAt = time.Now()
	r.users = append(r.users, *user)
	return nil
}

func (r memUsers) one(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memUsers) many(match func(domain.User) bool) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.users {
		if match(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.one(func(u domain.User) bool { return u.ID == id })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.one(func(u domain.User) bool { return u.Email == email })
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.one(func(u domain.User) bool { return u.Username == username })
}

func (r memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r memUsers) ListByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	return r.many(func(u domain.User) bool {
		for _, id := range ids {
			if id == u.ID {
				return true
			}
		}
		return false
	})
}

func (r memUsers) List(context.Context) ([]domain.User, error) {
	return r.many(func(domain.User) bool { return true })
}

func (r memUsers) Search(_ context.Context, q string) ([]domain.User, error) {
	q = strings.ToLower(q)
	return r.many(func(u domain.User) bool {
		return strings.Contains(strings.ToLower(u.Name+" "+u.Username+" "+u.Email), q)
	})
}

func (r memUsers) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memPosts struct{ *memoryStore }

func (r memPosts) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID()
	post.CreatedAt = time.Now()
	r.posts = append(r.posts, *post)
	return nil
}

func (r memPosts) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memPosts) List(context.Context, int, int) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.Post{}, r.posts...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memPosts) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

type memLikes struct{ *memoryStore }

func (r memLikes) Toggle(_ context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]int64{postID, userID}
	if r.likes[k] {
		delete(r.likes, k)
		return false, nil
	}
	r.likes[k] = true
	return true, nil
}

func (r memLikes) Exists(_ context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[[2]int64{postID, userID}], nil
}

func (r memLikes) CountByPost(_ context.Context, postID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.likes {
		if k[0] == postID {
			n++
		}
	}
	return n, nil
}

type memComments struct{ *memoryStore }

func (r memComments) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID()
	c.CreatedAt = time.Now()
	r.comments = append(r.comments, *c)
	return nil
}

func (r memComments) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memComments) ListByPost(_ context.Context, postID int64) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Comment{}
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].PostID == postID {
			out = append(out, r.comments[i])
		}
	}
	return out, nil
}

func (r memComments) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}
