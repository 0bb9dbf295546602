package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchConfigDefaults(t *testing.T) {
	cfg := NewSearchConfig(nil)
	assert.Equal(t, 10, cfg.ChunkCount)
	assert.Equal(t, "chat_completions", cfg.OpenAIAPIMode)
	assert.False(t, cfg.UseSemanticRanker)
	assert.False(t, cfg.UseStreaming)
	assert.False(t, cfg.UseKnowledgeAgent)
}

func TestNewSearchConfigOverlay(t *testing.T) {
	cfg := NewSearchConfig(map[string]any{
		"chunk_count":   5,
		"use_streaming": true,
	})
	assert.Equal(t, 5, cfg.ChunkCount)
	assert.True(t, cfg.UseStreaming)
	// Untouched keys keep their defaults.
	assert.Equal(t, "chat_completions", cfg.OpenAIAPIMode)
	assert.False(t, cfg.UseKnowledgeAgent)
}

func TestNewSearchConfigRejectsNonPositiveChunkCount(t *testing.T) {
	cfg := NewSearchConfig(map[string]any{"chunk_count": 0})
	assert.Equal(t, 10, cfg.ChunkCount)
}
