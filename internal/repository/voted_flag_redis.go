package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const votedFlagPrefix = "voted:"

// RedisVotedFlagStore keeps already-voted flags in Redis. Flags never expire:
// a device that submitted once skips straight to the completion screen on
// every later visit.
type RedisVotedFlagStore struct {
	rdb *redis.Client
}

// NewRedisVotedFlagStore creates a new RedisVotedFlagStore.
func NewRedisVotedFlagStore(rdb *redis.Client) *RedisVotedFlagStore {
	return &RedisVotedFlagStore{rdb: rdb}
}

// Get reports whether the device already voted.
func (s *RedisVotedFlagStore) Get(ctx context.Context, deviceID string) (bool, error) {
	v, err := s.rdb.Get(ctx, votedFlagPrefix+deviceID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get voted flag: %w", err)
	}
	return v == "1", nil
}

// Set marks the device as having voted.
func (s *RedisVotedFlagStore) Set(ctx context.Context, deviceID string) error {
	if err := s.rdb.Set(ctx, votedFlagPrefix+deviceID, "1", 0).Err(); err != nil {
		return fmt.Errorf("set voted flag: %w", err)
	}
	return nil
}
