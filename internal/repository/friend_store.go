package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// FriendStore keeps the symmetric friend graph as one Redis set per user.
type FriendStore interface {
	Add(ctx context.Context, userID, friendID int64) (bool, error)
	Remove(ctx context.Context, userID, friendID int64) error
	List(ctx context.Context, userID int64) ([]int64, error)
	AreFriends(ctx context.Context, userID, friendID int64) (bool, error)
}

type redisFriendStore struct {
	client redis.UniversalClient
	prefix string
}

// NewFriendStore returns a Redis-backed friend graph. Keys are "<prefix>:<id>".
func NewFriendStore(client redis.UniversalClient, prefix string) FriendStore {
	if prefix == "" {
		prefix = "friends"
	}
	return &redisFriendStore{client: client, prefix: prefix}
}

func (s *redisFriendStore) key(userID int64) string {
	return fmt.Sprintf("%s:%d", s.prefix, userID)
}

// Add links both directions atomically and reports whether the pair was new.
func (s *redisFriendStore) Add(ctx context.Context, userID, friendID int64) (bool, error) {
	var added *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, s.key(userID), friendID)
		pipe.SAdd(ctx, s.key(friendID), userID)
		return nil
	})
	if err != nil {
		return false, err
	}
	return added.Val() > 0, nil
}

// Remove unlinks both directions.
func (s *redisFriendStore) Remove(ctx context.Context, userID, friendID int64) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, s.key(userID), friendID)
		pipe.SRem(ctx, s.key(friendID), userID)
		return nil
	})
	return err
}

// List returns the friend ids of userID in ascending order.
func (s *redisFriendStore) List(ctx context.Context, userID int64) ([]int64, error) {
	members, err := s.client.SMembers(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt friend entry %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *redisFriendStore) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	return s.client.SIsMember(ctx, s.key(userID), friendID).Result()
}
