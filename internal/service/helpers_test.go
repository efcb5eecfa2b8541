package service

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chibuzordev/owlow/internal/config"
)

// stubOracle returns canned responses and records how often it was called.
type stubOracle struct {
	response string
	err      error
	calls    int
}

func (s *stubOracle) Complete(ctx context.Context, model, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	s.calls++
	return s.response, s.err
}

// scriptedOracle replays a sequence of responses, one per call.
type scriptedOracle struct {
	responses []string
	calls     int
}

func (s *scriptedOracle) Complete(ctx context.Context, model, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	resp := ""
	if s.calls < len(s.responses) {
		resp = s.responses[s.calls]
	}
	s.calls++
	return resp, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testAIConfig() *config.OpenAIConfig {
	return &config.OpenAIConfig{
		FilterModel:       "test-filter",
		AnalyzerModel:     "test-analyzer",
		AdvisorModel:      "test-advisor",
		FilterMaxTokens:   400,
		AnalyzerMaxTokens: 500,
		AdvisorMaxTokens:  300,
		Timeout:           time.Second,
		Enabled:           true,
	}
}
