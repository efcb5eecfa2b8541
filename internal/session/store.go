// Package session persists the last parsed filter set per session id. Saves
// are best-effort: the recommendation pipeline writes here as a side effect
// and never reads back in the same request.
package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/model"
)

// Store is the session filter cache capability.
type Store interface {
	SaveFilters(ctx context.Context, sessionID string, filters *model.Filter) error
	// GetFilters returns (nil, nil) when no filters are stored for the id.
	GetFilters(ctx context.Context, sessionID string) (*model.Filter, error)
}

// New selects the backing implementation from configuration: Redis when a URL
// is configured, a process-local map otherwise.
func New(cfg *config.RedisConfig, log *logrus.Logger) Store {
	if cfg.URL != "" {
		store, err := NewRedisStore(cfg.URL)
		if err == nil {
			log.Info("session store: redis")
			return store
		}
		log.WithError(err).Warn("redis unavailable, falling back to in-memory session store")
	}
	log.Info("session store: in-memory")
	return NewMemoryStore()
}
