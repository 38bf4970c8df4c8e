package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/echonet/echonet/internal/domain"
	"github.com/echonet/echonet/internal/events"
	"github.com/echonet/echonet/internal/repository"
	apperrors "github.com/echonet/echonet/pkg/util/errorutil"
)

// FriendService manages the friend graph between accounts.
type FriendService struct {
	users      repository.UserRepository
	friends    repository.FriendStore
	dispatcher events.Dispatcher
}

// FriendDependencies bundles collaborators for the friend service.
type FriendDependencies struct {
	UserRepo    repository.UserRepository
	FriendStore repository.FriendStore
	Dispatcher  events.Dispatcher
}

// NewFriendService builds the service.
func NewFriendService(deps FriendDependencies) *FriendService {
	return &FriendService{
		users:      deps.UserRepo,
		friends:    deps.FriendStore,
		dispatcher: deps.Dispatcher,
	}
}

// Friends returns the accounts befriended by userID.
func (s *FriendService) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.friends.List(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// AddFriend links userID and friendID in both directions. Adding an existing
// friend is a no-op and returns the friend.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID int64) (*domain.User, error) {
	if userID == friendID {
		return nil, apperrors.NewValidationError("cannot befriend yourself", nil)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	friend, err := s.users.GetByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": friendID})
		}
		return nil, apperrors.MapError(err)
	}

	added, err := s.friends.Add(ctx, userID, friendID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if added {
		publish(ctx, s.dispatcher, events.NewEvent(events.EventFriendAdded, userID, events.FriendAddedPayload{FriendID: friendID}))
	}
	return friend, nil
}

// RemoveFriend unlinks userID and friendID in both directions.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.friends.Remove(ctx, userID, friendID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Available returns every account except userID and its friends.
func (s *FriendService) Available(ctx context.Context, userID int64) ([]domain.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.friends.List(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	excluded := make(map[int64]struct{}, len(ids)+1)
	excluded[userID] = struct{}{}
	for _, id := range ids {
		excluded[id] = struct{}{}
	}

	all, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	available := make([]domain.User, 0, len(all))
	for _, u := range all {
		if _, skip := excluded[u.ID]; skip {
			continue
		}
		available = append(available, u)
	}
	return available, nil
}

// Search matches accounts by name, username or email, case-insensitively.
func (s *FriendService) Search(ctx context.Context, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query required", nil)
	}
	users, err := s.users.Search(ctx, query)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

func (s *FriendService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
