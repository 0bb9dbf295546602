package llmfactory

import (
	"context"
	"fmt"
	"strings"
	"time"

	eino_model "github.com/cloudwego/eino/components/model"
	ollama_api "github.com/ollama/ollama/api"

	"litigator/config"
	"litigator/internal/component/llm/ollama"
	"litigator/internal/component/llm/openai"
)

const (
	defaultLLMTimeout = 60 * time.Second
	serverOllama      = "ollama"
	serverOpenAI      = "openai"
)

// GetLLMClient builds the chat model for the configured provider.
func GetLLMClient(ctx context.Context, cfg config.LLMConfig) (eino_model.ToolCallingChatModel, error) {
	switch strings.ToLower(cfg.Server) {
	case serverOllama:
		ollamaCfg := &ollama.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: defaultLLMTimeout,
			Options: &ollama_api.Options{},
		}
		return ollama.NewChatModel(ctx, ollamaCfg)

	case serverOpenAI:
		openAICfg := &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Timeout:     defaultLLMTimeout,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}
		return openai.NewChatModel(ctx, openAICfg)

	default:
		return nil, fmt.Errorf("unsupported LLM server type: '%s'", cfg.Server)
	}
}
