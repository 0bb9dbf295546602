package rag

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

// ErrNoCompletion reports a provider that produced no usable output. The text
// is part of the client-facing contract.
var ErrNoCompletion = errors.New("No response received from chat completion stream.")

// Strategy covers the two points where grounding backends differ: how
// references are fetched and how model-cited identifiers resolve against
// them.
type Strategy interface {
	Retrieve(ctx context.Context, em *Emitter, searchText string, cfg SearchConfig) (*GroundingResults, error)
	ExtractCitations(results *GroundingResults, textIDs, imageIDs []string) (textCitations, imageCitations []string)
}

// Processor drives one request through retrieval, completion and citation
// resolution, emitting progress onto the request's stream as it goes.
type Processor struct {
	completer ChatCompleter
	search    Strategy
	agent     Strategy
}

// NewProcessor wires the completion provider and the grounding strategies.
// agent may be nil, in which case use_knowledge_agent falls back to search.
func NewProcessor(completer ChatCompleter, search, agent Strategy) *Processor {
	return &Processor{completer: completer, search: search, agent: agent}
}

// ProcessRequest runs the pipeline to completion. The returned error is meant
// for in-band reporting: callers convert it to an error event, never to an
// HTTP failure.
func (p *Processor) ProcessRequest(ctx context.Context, em *Emitter, searchText string, chatThread []*schema.Message, cfg SearchConfig) error {
	strat := p.search
	if cfg.UseKnowledgeAgent && p.agent != nil {
		strat = p.agent
	}

	grounding, err := strat.Retrieve(ctx, em, searchText, cfg)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	messages := buildMessages(grounding, chatThread, searchText)
	return p.formulateResponse(ctx, em, messages, strat, grounding, cfg)
}

func (p *Processor) formulateResponse(ctx context.Context, em *Emitter, messages []*schema.Message, strat Strategy, grounding *GroundingResults, cfg SearchConfig) error {
	em.Step(ProcessingStep{Title: "LLM Payload", Type: "code", Content: renderMessages(messages)})

	var complete *CompletionResponse

	if cfg.UseStreaming {
		cs, err := p.completer.CompleteStream(ctx, messages)
		if err != nil {
			return err
		}
		defer cs.Close()

		messageID := uuid.NewString()
		for {
			snap, err := cs.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if snap == nil || snap.Answer == nil {
				continue
			}
			em.Answer(messageID, *snap.Answer)
			complete = snap
		}
		if complete == nil {
			return ErrNoCompletion
		}
	} else {
		resp, err := p.completer.Complete(ctx, messages)
		if err != nil {
			return err
		}
		if resp == nil {
			return ErrNoCompletion
		}
		if resp.Answer != nil {
			em.Answer(uuid.NewString(), *resp.Answer)
		}
		complete = resp
	}

	text, images := strat.ExtractCitations(grounding, complete.TextCitations, complete.ImageCitations)
	em.Citations(text, images)
	return nil
}

const groundingPrompt = `You are a legal research assistant for a case file. Answer the user's question using only the reference passages below. Respond with a JSON object of the form {"answer": string, "text_citations": [ref_id], "image_citations": [ref_id]}, citing the ref_id of every passage your answer relies on. If the references do not contain the answer, say so in the answer field and cite nothing.

References:
%s`

func buildMessages(grounding *GroundingResults, chatThread []*schema.Message, searchText string) []*schema.Message {
	refs, err := sonic.MarshalString(grounding.References)
	if err != nil {
		refs = "[]"
	}

	messages := make([]*schema.Message, 0, len(chatThread)+2)
	messages = append(messages, schema.SystemMessage(fmt.Sprintf(groundingPrompt, refs)))
	messages = append(messages, chatThread...)
	messages = append(messages, schema.UserMessage(searchText))
	return messages
}

// renderMessages flattens the payload into plain maps so the processing_step
// event serializes the same way regardless of the schema type's internals.
func renderMessages(messages []*schema.Message) []map[string]string {
	out := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, map[string]string{
			"role":    string(m.Role),
			"content": m.Content,
		})
	}
	return out
}

// resolveCitations keeps only the identifiers present in the result set,
// preserving the model's citation order. Unknown identifiers are dropped
// without comment.
func resolveCitations(results *GroundingResults, ids []string) []string {
	known := make(map[string]bool, len(results.References))
	for _, ref := range results.References {
		known[ref.RefID] = true
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}
	return out
}
