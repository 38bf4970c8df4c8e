package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/events"
	"github.com/echonet/echonet/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) seed(users ...domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return exists(err)
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return exists(err)
}

func exists(err error) (bool, error) {
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) filter(keep func(*domain.User) bool) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.User{}
	for _, u := range r.users {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	set := map[int64]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return r.filter(func(u *domain.User) bool { return set[u.ID] })
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return r.filter(func(*domain.User) bool { return true })
}

func (r *fakeUserRepo) Search(_ context.Context, query string) ([]domain.User, error) {
	q := strings.ToLower(query)
	return r.filter(func(u *domain.User) bool {
		return strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Email), q)
	})
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[int64]*domain.Post
	next  int64
}

func newFakePostRepo(ids ...int64) *fakePostRepo {
	r := &fakePostRepo{posts: map[int64]*domain.Post{}}
	for _, id := range ids {
		r.posts[id] = &domain.Post{ID: id, Title: "t", Content: "c"}
		if id > r.next {
			r.next = id
		}
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	post.ID = r.next
	post.CreatedAt = time.Now()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) List(_ context.Context, _, _ int) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Post{}
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePostRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.posts[id]
	return ok, nil
}

type likeKey struct{ post, user int64 }

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[likeKey]bool{}}
}

func (r *fakeLikeRepo) Toggle(_ context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{postID, userID}
	if r.likes[k] {
		delete(r.likes, k)
		return false, nil
	}
	r.likes[k] = true
	return true, nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[likeKey{postID, userID}], nil
}

func (r *fakeLikeRepo) CountByPost(_ context.Context, postID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.likes {
		if k.post == postID {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[int64]*domain.Comment
	next     int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*domain.Comment{}}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	comment.ID = r.next
	comment.CreatedAt = time.Now()
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postID int64) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}
