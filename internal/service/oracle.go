package service

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chibuzordev/owlow/internal/config"
)

// Oracle is the text-completion capability every model-touching component is
// built on. It is an unreliable collaborator: callers must expect errors,
// empty text, and text that violates the requested schema.
type Oracle interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// OpenAIOracle is the production Oracle backed by an OpenAI-compatible API.
type OpenAIOracle struct {
	client *openai.Client
	cfg    *config.OpenAIConfig
}

// NewOpenAIOracle creates the oracle client once at process start; components
// receive it as an explicit handle.
func NewOpenAIOracle(cfg *config.OpenAIConfig) *OpenAIOracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientCfg.BaseURL = cfg.APIBase
	}
	return &OpenAIOracle{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

// IsEnabled returns whether the oracle is configured and ready
func (o *OpenAIOracle) IsEnabled() bool {
	return o.cfg.Enabled
}

// Complete sends a system/user prompt pair with a bounded output-token budget
// and returns the raw completion text.
func (o *OpenAIOracle) Complete(ctx context.Context, model, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if !o.cfg.Enabled {
		return "", fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

var _ Oracle = (*OpenAIOracle)(nil)
