package rag

import (
	"context"
	"fmt"
)

// SearchStrategy grounds a request with a single direct semantic search.
type SearchStrategy struct {
	retriever GroundingRetriever
}

func NewSearchStrategy(retriever GroundingRetriever) *SearchStrategy {
	return &SearchStrategy{retriever: retriever}
}

func (s *SearchStrategy) Retrieve(ctx context.Context, em *Emitter, searchText string, cfg SearchConfig) (*GroundingResults, error) {
	em.Info(fmt.Sprintf("Searching: %s", searchText), "")
	return s.retriever.Retrieve(ctx, searchText, cfg)
}

func (s *SearchStrategy) ExtractCitations(results *GroundingResults, textIDs, imageIDs []string) ([]string, []string) {
	return resolveCitations(results, textIDs), resolveCitations(results, imageIDs)
}
