package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"litigator/internal/dao"
	"litigator/internal/rag"
)

// Case-file operations exposed as callable tools for the orchestrator. Each
// tool is read-only; mutations stay behind the authenticated REST surface.

type searchExhibitsInput struct {
	Query string `json:"query" jsonschema:"description=natural language query over the indexed exhibit text"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"description=number of passages to return, defaults to 5"`
}

type exhibitPassage struct {
	RefID       string `json:"ref_id"`
	ExhibitName string `json:"exhibit_name"`
	Text        string `json:"text"`
}

type searchExhibitsOutput struct {
	Passages []exhibitPassage `json:"passages"`
}

type listFactsInput struct{}

type factSummary struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
	Date string `json:"date,omitempty"`
	Para string `json:"para,omitempty"`
}

type listFactsOutput struct {
	Facts []factSummary `json:"facts"`
}

type listCausesInput struct{}

type causeSummary struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Elements []string `json:"elements"`
}

type listCausesOutput struct {
	Causes []causeSummary `json:"causes"`
}

// Toolset builds the local tools from the case-file collaborators.
type Toolset struct {
	retriever rag.GroundingRetriever
	facts     dao.FactDao
	elements  dao.ElementDao
}

func NewToolset(retriever rag.GroundingRetriever, facts dao.FactDao, elements dao.ElementDao) *Toolset {
	return &Toolset{retriever: retriever, facts: facts, elements: elements}
}

func (t *Toolset) Tools(ctx context.Context) ([]tool.BaseTool, error) {
	searchTool, err := utils.InferTool(
		"search_exhibits",
		"Semantic search over the text of all indexed exhibits. Returns the most relevant passages with their reference IDs.",
		t.searchExhibits,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build search_exhibits tool: %w", err)
	}

	factsTool, err := utils.InferTool(
		"list_facts",
		"List every fact in the case file with its ID, text, date and complaint paragraph.",
		t.listFacts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build list_facts tool: %w", err)
	}

	causesTool, err := utils.InferTool(
		"list_causes_of_action",
		"List the causes of action pleaded in the case together with their legal elements.",
		t.listCauses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build list_causes_of_action tool: %w", err)
	}

	return []tool.BaseTool{searchTool, factsTool, causesTool}, nil
}

func (t *Toolset) searchExhibits(ctx context.Context, input *searchExhibitsInput) (*searchExhibitsOutput, error) {
	cfg := rag.DefaultSearchConfig()
	if input.TopK > 0 {
		cfg.ChunkCount = input.TopK
	} else {
		cfg.ChunkCount = 5
	}

	results, err := t.retriever.Retrieve(ctx, input.Query, cfg)
	if err != nil {
		return nil, fmt.Errorf("exhibit search failed: %w", err)
	}

	out := &searchExhibitsOutput{Passages: make([]exhibitPassage, 0, len(results.References))}
	for _, ref := range results.References {
		passage := exhibitPassage{RefID: ref.RefID}
		if text, ok := ref.Content["text"].(string); ok {
			passage.Text = text
		}
		if name, ok := ref.Content["exhibit_name"].(string); ok {
			passage.ExhibitName = name
		}
		out.Passages = append(out.Passages, passage)
	}
	return out, nil
}

func (t *Toolset) listFacts(ctx context.Context, _ *listFactsInput) (*listFactsOutput, error) {
	facts, err := t.facts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}

	out := &listFactsOutput{Facts: make([]factSummary, 0, len(facts))}
	for _, f := range facts {
		out.Facts = append(out.Facts, factSummary{
			ID:   f.ID,
			Text: f.Text,
			Date: f.Date,
			Para: f.Para,
		})
	}
	return out, nil
}

func (t *Toolset) listCauses(ctx context.Context, _ *listCausesInput) (*listCausesOutput, error) {
	causes, err := t.elements.ListCauses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list causes: %w", err)
	}

	out := &listCausesOutput{Causes: make([]causeSummary, 0, len(causes))}
	for _, cause := range causes {
		elements, err := t.elements.ListElementsByCauseID(ctx, cause.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list elements for cause %d: %w", cause.ID, err)
		}
		summary := causeSummary{ID: cause.ID, Name: cause.Name}
		for _, el := range elements {
			summary.Elements = append(summary.Elements, el.Name)
		}
		out.Causes = append(out.Causes, summary)
	}
	return out, nil
}
