package rag

import (
	"github.com/bytedance/sonic"
)

// SearchConfig carries the per-request retrieval and generation switches.
type SearchConfig struct {
	ChunkCount        int    `json:"chunk_count"`
	OpenAIAPIMode     string `json:"openai_api_mode"`
	UseSemanticRanker bool   `json:"use_semantic_ranker"`
	UseStreaming      bool   `json:"use_streaming"`
	UseKnowledgeAgent bool   `json:"use_knowledge_agent"`
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		ChunkCount:        10,
		OpenAIAPIMode:     "chat_completions",
		UseSemanticRanker: false,
		UseStreaming:      false,
		UseKnowledgeAgent: false,
	}
}

// NewSearchConfig overlays client-supplied keys on the defaults; absent keys
// keep their default values.
func NewSearchConfig(raw map[string]any) SearchConfig {
	cfg := DefaultSearchConfig()
	if len(raw) == 0 {
		return cfg
	}
	data, err := sonic.Marshal(raw)
	if err != nil {
		return cfg
	}
	// Unmarshal onto the pre-filled struct so missing fields survive.
	_ = sonic.Unmarshal(data, &cfg)
	if cfg.ChunkCount <= 0 {
		cfg.ChunkCount = DefaultSearchConfig().ChunkCount
	}
	return cfg
}
