package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibuzordev/owlow/internal/config"
)

func newTestAnalyzer(oracle Oracle) *BatchAnalyzer {
	return NewBatchAnalyzer(oracle, testAIConfig(), &config.AnalyzerConfig{Throttle: 0}, testLogger())
}

func TestAnalyzeBatch_PlaceholderMode(t *testing.T) {
	oracle := &stubOracle{response: `{"summary":"should not be called"}`}
	a := newTestAnalyzer(oracle)
	props := testDataset()

	results := a.AnalyzeBatch(context.Background(), props, false)

	require.Len(t, results, len(props))
	for _, r := range results {
		assert.Equal(t, PendingAnalysis, r.Pending)
		assert.Empty(t, r.Summary)
		assert.Empty(t, r.Error)
	}
	assert.Equal(t, 0, oracle.calls)
}

func TestAnalyzeBatch_OrderMirrorsInput(t *testing.T) {
	oracle := &stubOracle{response: `{"summary":"s","condition":"dobry","recommendation":"warto"}`}
	a := newTestAnalyzer(oracle)
	props := testDataset()

	results := a.AnalyzeBatch(context.Background(), props, true)

	require.Len(t, results, len(props))
	assert.Equal(t, len(props), oracle.calls)
}

func TestAnalyzeOne_StructuredResult(t *testing.T) {
	oracle := &stubOracle{response: `{"summary":"Przytulne 3 pokoje","condition":"dobry","recommendation":"warto obejrzeć"}`}
	a := newTestAnalyzer(oracle)

	got := a.AnalyzeOne(context.Background(), testDataset()[0])

	assert.Equal(t, "Przytulne 3 pokoje", got.Summary)
	assert.Equal(t, "dobry", got.Condition)
	assert.Equal(t, "warto obejrzeć", got.Recommendation)
	assert.Empty(t, got.Raw)
	assert.Empty(t, got.Error)
}

func TestAnalyzeOne_NonJSONKeepsRawText(t *testing.T) {
	oracle := &stubOracle{response: "To mieszkanie wygląda świetnie, ale nie mam JSONa."}
	a := newTestAnalyzer(oracle)

	got := a.AnalyzeOne(context.Background(), testDataset()[0])

	assert.Equal(t, "To mieszkanie wygląda świetnie, ale nie mam JSONa.", got.Raw)
	assert.Empty(t, got.Summary)
}

func TestAnalyzeOne_OracleErrorBecomesErrorPayload(t *testing.T) {
	oracle := &stubOracle{err: errors.New("rate limited")}
	a := newTestAnalyzer(oracle)

	got := a.AnalyzeOne(context.Background(), testDataset()[0])

	assert.Equal(t, "rate limited", got.Error)
	assert.Empty(t, got.Summary)
	assert.Empty(t, got.Raw)
}

func TestAnalyzeOne_PromptLimits(t *testing.T) {
	var seenUser string
	oracle := &captureUserOracle{response: `{"summary":"s"}`, userOut: &seenUser}
	a := newTestAnalyzer(oracle)

	prop := testDataset()[0]
	prop.Description = strings.Repeat("x", 2000)
	prop.Media = []string{"u1", "u2", "u3", "u4", "u5"}

	a.AnalyzeOne(context.Background(), prop)

	// The property JSON at the top carries everything; the dedicated sections
	// are capped at 3 images and an 800-character excerpt.
	_, after, found := strings.Cut(seenUser, "Images:\n")
	require.True(t, found)
	imagesPart, excerpt, found := strings.Cut(after, "\n\nDescription excerpt:\n")
	require.True(t, found)
	assert.Equal(t, "u1\nu2\nu3", imagesPart)
	assert.Equal(t, strings.Repeat("x", 800), excerpt)
}

// captureUserOracle records the user prompt it was invoked with.
type captureUserOracle struct {
	response string
	userOut  *string
}

func (c *captureUserOracle) Complete(ctx context.Context, model, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	*c.userOut = userPrompt
	return c.response, nil
}
