package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/schema"
)

const defaultMaxSubQueries = 3

const planPrompt = `Decompose the research question into focused search queries over a case file of facts and exhibits. Write at most %d queries, one per line, nothing else. If the question is already a good query, return it unchanged.`

// KnowledgeAgentStrategy grounds a request by asking the model to plan
// sub-queries, then fanning retrieval out across them and merging the
// references.
type KnowledgeAgentStrategy struct {
	retriever     GroundingRetriever
	planner       ChatCompleter
	maxSubQueries int
}

func NewKnowledgeAgentStrategy(retriever GroundingRetriever, planner ChatCompleter) *KnowledgeAgentStrategy {
	return &KnowledgeAgentStrategy{
		retriever:     retriever,
		planner:       planner,
		maxSubQueries: defaultMaxSubQueries,
	}
}

func (s *KnowledgeAgentStrategy) Retrieve(ctx context.Context, em *Emitter, searchText string, cfg SearchConfig) (*GroundingResults, error) {
	queries := s.plan(ctx, searchText)

	merged := &GroundingResults{}
	seen := make(map[string]bool)
	for _, query := range queries {
		em.Info(fmt.Sprintf("Searching: %s", query), "")
		results, err := s.retriever.Retrieve(ctx, query, cfg)
		if err != nil {
			return nil, err
		}
		merged.SearchQueries = append(merged.SearchQueries, results.SearchQueries...)
		for _, ref := range results.References {
			if seen[ref.RefID] {
				continue
			}
			seen[ref.RefID] = true
			merged.References = append(merged.References, ref)
		}
	}

	if cfg.ChunkCount > 0 && len(merged.References) > cfg.ChunkCount {
		merged.References = merged.References[:cfg.ChunkCount]
	}
	return merged, nil
}

func (s *KnowledgeAgentStrategy) ExtractCitations(results *GroundingResults, textIDs, imageIDs []string) ([]string, []string) {
	return resolveCitations(results, textIDs), resolveCitations(results, imageIDs)
}

// plan asks the model for sub-queries. Any planner failure falls back to the
// raw question; planning is an optimization, never a reason to fail the
// request.
func (s *KnowledgeAgentStrategy) plan(ctx context.Context, searchText string) []string {
	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(planPrompt, s.maxSubQueries)),
		schema.UserMessage(searchText),
	}

	resp, err := s.planner.Complete(ctx, messages)
	if err != nil || resp == nil || resp.Answer == nil {
		if err != nil {
			log.Printf("[RAG] query planning failed, using raw query: %v", err)
		}
		return []string{searchText}
	}

	var queries []string
	for _, line := range strings.Split(*resp.Answer, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" {
			continue
		}
		queries = append(queries, line)
		if len(queries) == s.maxSubQueries {
			break
		}
	}
	if len(queries) == 0 {
		return []string{searchText}
	}
	return queries
}
