package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/model"
	"github.com/chibuzordev/owlow/internal/utils"
)

const analyzerSystemPrompt = `ROLE: Polish speaking property analyst. Output strict JSON with keys: {"summary","condition","recommendation"} - concise.`

// PendingAnalysis is the placeholder produced in no-LLM mode.
const PendingAnalysis = "[Analysis pending]"

// BatchAnalyzer asks the model for a structured per-listing analysis. Oracle
// calls are strictly sequential and throttled to stay under rate limits;
// failures degrade to error payloads so a batch always completes.
type BatchAnalyzer struct {
	oracle    Oracle
	model     string
	maxTokens int
	limiter   *rate.Limiter
	log       *logrus.Logger
}

// NewBatchAnalyzer creates a new batch analyzer. The throttle delay configures
// the limiter spacing successive oracle calls.
func NewBatchAnalyzer(oracle Oracle, aiCfg *config.OpenAIConfig, cfg *config.AnalyzerConfig, log *logrus.Logger) *BatchAnalyzer {
	return &BatchAnalyzer{
		oracle:    oracle,
		model:     aiCfg.AnalyzerModel,
		maxTokens: aiCfg.AnalyzerMaxTokens,
		limiter:   rate.NewLimiter(rate.Every(cfg.Throttle), 1),
		log:       log,
	}
}

// AnalyzeOne requests a three-key JSON analysis for a single property.
func (a *BatchAnalyzer) AnalyzeOne(ctx context.Context, prop model.Property) model.Analysis {
	serialized, err := json.Marshal(prop)
	if err != nil {
		serialized = []byte("{}")
	}

	images := prop.Media
	if len(images) > 3 {
		images = images[:3]
	}
	brief := utils.TruncateRunes(prop.Description, 800)

	userPrompt := fmt.Sprintf(
		"Property summary:\n%s\n\nImages:\n%s\n\nDescription excerpt:\n%s",
		string(serialized), strings.Join(images, "\n"), brief,
	)

	raw, err := a.oracle.Complete(ctx, a.model, analyzerSystemPrompt, userPrompt, a.maxTokens)
	if err != nil {
		a.log.WithError(err).WithField("property_id", prop.ID).Warn("analysis completion failed")
		return model.Analysis{Error: err.Error()}
	}

	var analysis model.Analysis
	if err := utils.ParseAIJSON(raw, &analysis); err != nil {
		return model.Analysis{Raw: raw}
	}
	return analysis
}

// AnalyzeBatch analyzes every property in order. The result slice is aligned
// 1:1 by position with the input so callers can zip it back onto the source
// properties. With useLLM false the oracle is skipped entirely and each
// property gets a placeholder.
func (a *BatchAnalyzer) AnalyzeBatch(ctx context.Context, props []model.Property, useLLM bool) []model.Analysis {
	results := make([]model.Analysis, 0, len(props))

	if !useLLM {
		for range props {
			results = append(results, model.Analysis{Pending: PendingAnalysis})
		}
		return results
	}

	for _, p := range props {
		if err := a.limiter.Wait(ctx); err != nil {
			results = append(results, model.Analysis{Error: err.Error()})
			continue
		}
		results = append(results, a.AnalyzeOne(ctx, p))
	}
	return results
}
