package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chibuzordev/owlow/internal/model"
)

// FileStore is the offline listing store: a JSON file of raw records plus a
// sidecar cache file mapping listing id to analysis. It exists so the whole
// pipeline can run without a database.
type FileStore struct {
	dataPath  string
	cachePath string
}

// NewFileStore creates a file-backed listing store and initializes the
// analysis cache file when absent.
func NewFileStore(dataPath, cachePath string) (*FileStore, error) {
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		if err := os.WriteFile(cachePath, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to initialize analysis cache: %w", err)
		}
	}
	return &FileStore{dataPath: dataPath, cachePath: cachePath}, nil
}

// FetchAllRaw loads the raw listing records from the data file. A single
// top-level object is treated as a one-record dataset.
func (s *FileStore) FetchAllRaw(ctx context.Context) ([]map[string]any, error) {
	data, err := os.ReadFile(s.dataPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("missing %s: %w", s.dataPath, ErrNoListings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read listing data: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		var single map[string]any
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to decode listing data: %w", err)
		}
		records = []map[string]any{single}
	}
	return records, nil
}

// UpdateAnalysisBatch merges the updates into the id -> analysis cache file.
func (s *FileStore) UpdateAnalysisBatch(ctx context.Context, updates []AnalysisUpdate) (int, error) {
	cache := map[string]model.Analysis{}
	if data, err := os.ReadFile(s.cachePath); err == nil {
		// A corrupt cache starts over rather than failing the batch.
		_ = json.Unmarshal(data, &cache)
	}

	for _, upd := range updates {
		cache[upd.ID] = upd.Analysis
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode analysis cache: %w", err)
	}
	if err := os.WriteFile(s.cachePath, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write analysis cache: %w", err)
	}
	return len(updates), nil
}

var _ ListingStore = (*FileStore)(nil)
