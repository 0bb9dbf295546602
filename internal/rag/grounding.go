package rag

import (
	"context"
	"fmt"

	eino_embedding "github.com/cloudwego/eino/components/embedding"

	"litigator/internal/dao"
	"litigator/internal/utils"
)

// GroundingResult is one retrieved reference passage.
type GroundingResult struct {
	RefID       string         `json:"ref_id"`
	Content     map[string]any `json:"content"`
	ContentType string         `json:"content_type"`
}

// GroundingResults is everything retrieval produced for one request.
type GroundingResults struct {
	References    []GroundingResult `json:"references"`
	SearchQueries []string          `json:"search_queries"`
}

// GroundingRetriever fetches reference passages for a query.
type GroundingRetriever interface {
	Retrieve(ctx context.Context, query string, cfg SearchConfig) (*GroundingResults, error)
}

// MilvusRetriever grounds queries by embedding them and running a vector
// search over the exhibit chunk collection.
type MilvusRetriever struct {
	embedder eino_embedding.Embedder
	chunks   dao.MilvusDao
}

func NewMilvusRetriever(embedder eino_embedding.Embedder, chunks dao.MilvusDao) *MilvusRetriever {
	return &MilvusRetriever{embedder: embedder, chunks: chunks}
}

func (r *MilvusRetriever) Retrieve(ctx context.Context, query string, cfg SearchConfig) (*GroundingResults, error) {
	vectors, err := r.embedder.EmbedStrings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	chunks, err := r.chunks.Search(ctx, utils.ConvertFloat64ToFloat32Embedding(vectors[0]), cfg.ChunkCount)
	if err != nil {
		return nil, fmt.Errorf("failed to search exhibit chunks: %w", err)
	}

	refs := make([]GroundingResult, 0, len(chunks))
	for _, chunk := range chunks {
		contentType := chunk.ContentType
		if contentType == "" {
			contentType = "text"
		}
		refs = append(refs, GroundingResult{
			RefID: chunk.ID,
			Content: map[string]any{
				"text":         chunk.Content,
				"exhibit_id":   chunk.ExhibitID,
				"exhibit_name": chunk.ExhibitName,
				"chunk_index":  chunk.Index,
			},
			ContentType: contentType,
		})
	}

	return &GroundingResults{
		References:    refs,
		SearchQueries: []string{query},
	}, nil
}
