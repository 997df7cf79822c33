package favorites

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore handles favorites persistence in Redis sets
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// getFavoritesKey generates the Redis key for a user's favorites of one kind
func getFavoritesKey(userID uuid.UUID, kind Kind) string {
	return fmt.Sprintf("favorites:%s:%s", userID.String(), kind)
}

func (s *RedisStore) Add(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error {
	if err := s.client.SAdd(ctx, getFavoritesKey(userID, kind), id.String()).Err(); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error {
	if err := s.client.SRem(ctx, getFavoritesKey(userID, kind), id.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *RedisStore) Contains(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) (bool, error) {
	ok, err := s.client.SIsMember(ctx, getFavoritesKey(userID, kind), id.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return ok, nil
}

// Members returns the favorite ids of one kind in a stable order.
// Members that are not valid UUIDs are skipped.
func (s *RedisStore) Members(ctx context.Context, userID uuid.UUID, kind Kind) ([]uuid.UUID, error) {
	members, err := s.client.SMembers(ctx, getFavoritesKey(userID, kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	SortIDs(ids)
	return ids, nil
}

// SortIDs orders ids bytewise
func SortIDs(ids []uuid.UUID) {
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
}
