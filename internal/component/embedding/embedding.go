package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/embedding/openai"
	eino_embedding "github.com/cloudwego/eino/components/embedding"

	"litigator/config"
)

const defaultEmbedTimeout = 30 * time.Second

// NewEmbedder builds the OpenAI-compatible embedder from config.
func NewEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (eino_embedding.Embedder, error) {
	dimension := cfg.Dimension
	embedder, err := openai.NewEmbedder(ctx, &openai.EmbeddingConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		Timeout:    defaultEmbedTimeout,
		Dimensions: &dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}
