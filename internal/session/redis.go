package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/chibuzordev/owlow/internal/model"
)

// RedisStore persists session filters in Redis under filters:<session_id>.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store from a redis:// URL.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// SaveFilters stores the filter set for a session id.
func (s *RedisStore) SaveFilters(ctx context.Context, sessionID string, filters *model.Filter) error {
	payload, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}
	if err := s.client.Set(ctx, filterKey(sessionID), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save filters: %w", err)
	}
	return nil
}

// GetFilters returns the stored filter set, or (nil, nil) when absent.
func (s *RedisStore) GetFilters(ctx context.Context, sessionID string) (*model.Filter, error) {
	data, err := s.client.Get(ctx, filterKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load filters: %w", err)
	}

	var filters model.Filter
	if err := json.Unmarshal([]byte(data), &filters); err != nil {
		return nil, fmt.Errorf("failed to decode filters: %w", err)
	}
	return &filters, nil
}

func filterKey(sessionID string) string {
	return "filters:" + sessionID
}

var _ Store = (*RedisStore)(nil)
