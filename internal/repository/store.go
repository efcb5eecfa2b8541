package repository

import (
	"context"
	"errors"

	"github.com/chibuzordev/owlow/internal/model"
)

// ErrNoListings is returned when the backing data is absent. There is no
// sensible default dataset, so this surfaces to the caller.
var ErrNoListings = errors.New("no listing data available")

// AnalysisUpdate pairs a listing id with its batch-analysis result.
type AnalysisUpdate struct {
	ID       string         `json:"id"`
	Analysis model.Analysis `json:"analysis"`
}

// ListingStore returns raw listing records and accepts batched per-id
// analysis updates. The implementation (files, SQL) is irrelevant to the
// query pipeline.
type ListingStore interface {
	FetchAllRaw(ctx context.Context) ([]map[string]any, error)
	UpdateAnalysisBatch(ctx context.Context, updates []AnalysisUpdate) (int, error)
}
