package openai

import (
	"context"
	"fmt"
	"time"

	eino_openai "github.com/cloudwego/eino-ext/components/model/openai"
	eino_model "github.com/cloudwego/eino/components/model"
)

type ChatModelConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
}

// NewChatModel builds an OpenAI-compatible chat model. BaseURL may point at
// any endpoint speaking the OpenAI chat completions protocol.
func NewChatModel(ctx context.Context, cfg *ChatModelConfig) (eino_model.ToolCallingChatModel, error) {
	einoCfg := &eino_openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}
	if cfg.MaxTokens > 0 {
		einoCfg.MaxTokens = &cfg.MaxTokens
	}
	if cfg.Temperature > 0 {
		einoCfg.Temperature = &cfg.Temperature
	}

	cm, err := eino_openai.NewChatModel(ctx, einoCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai chat model: %w", err)
	}
	return cm, nil
}
