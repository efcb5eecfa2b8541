package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chibuzordev/owlow/internal/model"
	"github.com/chibuzordev/owlow/internal/repository"
	"github.com/chibuzordev/owlow/internal/session"
)

const topResults = 5

// RecommendService drives the full query-to-results pipeline and the batch
// analysis job on top of the listing store.
type RecommendService struct {
	store       repository.ListingStore
	sessions    session.Store
	normalizer  *Normalizer
	interpreter *FilterInterpreter
	engine      *FilterEngine
	advisor     *Advisor
	analyzer    *BatchAnalyzer
	log         *logrus.Logger
}

// NewRecommendService wires the pipeline components together.
func NewRecommendService(
	store repository.ListingStore,
	sessions session.Store,
	normalizer *Normalizer,
	interpreter *FilterInterpreter,
	engine *FilterEngine,
	advisor *Advisor,
	analyzer *BatchAnalyzer,
	log *logrus.Logger,
) *RecommendService {
	return &RecommendService{
		store:       store,
		sessions:    sessions,
		normalizer:  normalizer,
		interpreter: interpreter,
		engine:      engine,
		advisor:     advisor,
		analyzer:    analyzer,
		log:         log,
	}
}

// Recommend parses the query into filters, applies them to the normalized
// dataset, and returns the filters, the top results by ascending price, and
// an advisory paragraph. A session id, when given, persists the parsed
// filters as a best-effort side effect.
func (s *RecommendService) Recommend(ctx context.Context, query, sessionID string) (*model.RecommendResponse, error) {
	raw, err := s.store.FetchAllRaw(ctx)
	if err != nil {
		return nil, err
	}

	props := make([]model.Property, 0, len(raw))
	for _, record := range raw {
		props = append(props, s.normalizer.Normalize(record))
	}

	filters := s.interpreter.Parse(ctx, query, columnHints())

	if sessionID != "" {
		if err := s.sessions.SaveFilters(ctx, sessionID, filters); err != nil {
			s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to save session filters")
		}
	}

	matched := s.engine.Apply(props, filters)
	top := RankByPrice(matched, topResults)
	advice := s.advisor.Advise(ctx, query, top)

	return &model.RecommendResponse{
		Filters: filters,
		Results: top,
		Advisor: advice,
	}, nil
}

// RunBatchAnalysis fetches and normalizes every listing, analyzes each one,
// and persists the results keyed by listing id. Intended to run periodically
// or on demand.
func (s *RecommendService) RunBatchAnalysis(ctx context.Context, useLLM bool) (*model.AnalyzeResponse, error) {
	raw, err := s.store.FetchAllRaw(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return &model.AnalyzeResponse{Status: "no_data"}, nil
	}

	props := make([]model.Property, 0, len(raw))
	for _, record := range raw {
		props = append(props, s.normalizer.Normalize(record))
	}

	results := s.analyzer.AnalyzeBatch(ctx, props, useLLM)

	updates := make([]repository.AnalysisUpdate, 0, len(props))
	for i, p := range props {
		updates = append(updates, repository.AnalysisUpdate{ID: p.ID, Analysis: results[i]})
	}

	saved, err := s.store.UpdateAnalysisBatch(ctx, updates)
	if err != nil {
		return nil, err
	}

	s.log.WithField("count", saved).Info("batch analysis persisted")
	return &model.AnalyzeResponse{Status: "ok", Count: saved}, nil
}

// columnHints lists the property field names plus the feature vocabulary,
// biasing the interpreter toward columns that actually exist.
func columnHints() []string {
	hints := []string{
		"id", "title", "price", "priceCurrency", "pricePerM2",
		"city", "voivodeship", "district", "bedrooms", "areaM2",
		"description", "media",
	}
	return append(hints, model.FeatureNames()...)
}
