package session

import (
	"context"
	"sync"

	"github.com/chibuzordev/owlow/internal/model"
)

// MemoryStore is the process-local fallback used when no Redis URL is
// configured. Contents do not survive restarts and are not shared across
// processes.
type MemoryStore struct {
	mu      sync.RWMutex
	filters map[string]*model.Filter
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{filters: make(map[string]*model.Filter)}
}

// SaveFilters stores the filter set for a session id.
func (s *MemoryStore) SaveFilters(ctx context.Context, sessionID string, filters *model.Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[sessionID] = filters
	return nil
}

// GetFilters returns the stored filter set, or (nil, nil) when absent.
func (s *MemoryStore) GetFilters(ctx context.Context, sessionID string) (*model.Filter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters[sessionID], nil
}

var _ Store = (*MemoryStore)(nil)
