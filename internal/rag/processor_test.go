package rag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetriever struct {
	results *GroundingResults
	err     error
	queries []string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, cfg SearchConfig) (*GroundingResults, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeCompleter struct {
	resp      *CompletionResponse
	err       error
	snapshots []*CompletionResponse
	panicMsg  string
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []*schema.Message) (*CompletionResponse, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.resp, f.err
}

func (f *fakeCompleter) CompleteStream(ctx context.Context, messages []*schema.Message) (CompletionStream, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeStream{snapshots: f.snapshots}, nil
}

type fakeStream struct {
	snapshots []*CompletionResponse
	pos       int
}

func (f *fakeStream) Recv() (*CompletionResponse, error) {
	if f.pos >= len(f.snapshots) {
		return nil, io.EOF
	}
	snap := f.snapshots[f.pos]
	f.pos++
	return snap, nil
}

func (f *fakeStream) Close() {}

func strptr(s string) *string { return &s }

func singleRef(id string) *GroundingResults {
	return &GroundingResults{
		References: []GroundingResult{
			{RefID: id, Content: map[string]any{"text": "passage"}, ContentType: "text"},
		},
		SearchQueries: []string{"q"},
	}
}

// runRequest drives the processor the same way the handler does and collects
// every emitted event in order.
func runRequest(p *Processor, query string, cfg SearchConfig) []Envelope {
	stream := NewStream()
	em := NewEmitter("req-1", stream)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				em.Error(fmt.Sprint(r))
			}
			em.End()
			stream.Close()
		}()
		if err := p.ProcessRequest(context.Background(), em, query, nil, cfg); err != nil {
			em.Error(err.Error())
		}
	}()

	var events []Envelope
	for {
		env, ok := stream.Next()
		if !ok {
			break
		}
		events = append(events, env)
	}
	return events
}

func eventKinds(events []Envelope) []string {
	kinds := make([]string, 0, len(events))
	for _, env := range events {
		kinds = append(kinds, env.Event)
	}
	return kinds
}

func TestSingleShotAnswerFlow(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r1")}
	completer := &fakeCompleter{resp: &CompletionResponse{
		Answer:         strptr("Three years."),
		TextCitations:  []string{"r1"},
		ImageCitations: []string{},
	}}
	p := NewProcessor(completer, NewSearchStrategy(retriever), nil)

	events := runRequest(p, "What is the statute of limitations?", DefaultSearchConfig())

	require.Equal(t, []string{EventInfo, EventProcessingStep, EventAnswer, EventCitation, EventEnd}, eventKinds(events))

	answer := events[2].Data.(answerPayload)
	assert.Equal(t, "assistant", answer.Role)
	assert.Equal(t, "Three years.", answer.AnswerPartial.Answer)

	citation := events[3].Data.(citationPayload)
	assert.Equal(t, []string{"r1"}, citation.TextCitations)
	assert.Empty(t, citation.ImageCitations)
}

func TestRetrieverFailureEmitsErrorThenEnd(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("connection refused")}
	p := NewProcessor(&fakeCompleter{}, NewSearchStrategy(retriever), nil)

	events := runRequest(p, "anything", DefaultSearchConfig())

	require.Equal(t, []string{EventInfo, EventError, EventEnd}, eventKinds(events))
	assert.Contains(t, events[1].Data.(errorPayload).Message, "connection refused")
}

func TestEmptyCompletionEmitsError(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r1")}
	completer := &fakeCompleter{resp: nil}
	p := NewProcessor(completer, NewSearchStrategy(retriever), nil)

	events := runRequest(p, "q", DefaultSearchConfig())

	kinds := eventKinds(events)
	assert.NotContains(t, kinds, EventAnswer)
	assert.NotContains(t, kinds, EventCitation)
	require.Equal(t, EventError, kinds[len(kinds)-2])
	assert.Contains(t, events[len(events)-2].Data.(errorPayload).Message, "No response received")
}

func TestEmptyCompletionStreamEmitsError(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r1")}
	completer := &fakeCompleter{snapshots: nil}
	p := NewProcessor(completer, NewSearchStrategy(retriever), nil)

	cfg := DefaultSearchConfig()
	cfg.UseStreaming = true
	events := runRequest(p, "q", cfg)

	kinds := eventKinds(events)
	assert.NotContains(t, kinds, EventAnswer)
	assert.Contains(t, events[len(events)-2].Data.(errorPayload).Message, "No response received")
}

func TestStreamingDeltasShareMessageID(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r2")}
	completer := &fakeCompleter{snapshots: []*CompletionResponse{
		{Answer: strptr("A")},
		{Answer: strptr("A B")},
		{Answer: strptr("A B C"), TextCitations: []string{"r2"}},
	}}
	p := NewProcessor(completer, NewSearchStrategy(retriever), nil)

	cfg := DefaultSearchConfig()
	cfg.UseStreaming = true
	events := runRequest(p, "q", cfg)

	require.Equal(t, []string{EventInfo, EventProcessingStep, EventAnswer, EventAnswer, EventAnswer, EventCitation, EventEnd}, eventKinds(events))

	first := events[2].Data.(answerPayload)
	second := events[3].Data.(answerPayload)
	third := events[4].Data.(answerPayload)
	assert.Equal(t, first.MessageID, second.MessageID)
	assert.Equal(t, first.MessageID, third.MessageID)
	assert.Equal(t, "A", first.AnswerPartial.Answer)
	assert.Equal(t, "A B", second.AnswerPartial.Answer)
	assert.Equal(t, "A B C", third.AnswerPartial.Answer)

	assert.Equal(t, []string{"r2"}, events[5].Data.(citationPayload).TextCitations)
}

func TestUnknownCitationIDsAreDropped(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r1")}
	completer := &fakeCompleter{resp: &CompletionResponse{
		Answer:         strptr("answer"),
		TextCitations:  []string{"r1", "bogus"},
		ImageCitations: []string{"also-bogus"},
	}}
	p := NewProcessor(completer, NewSearchStrategy(retriever), nil)

	events := runRequest(p, "q", DefaultSearchConfig())

	citation := events[len(events)-2].Data.(citationPayload)
	assert.Equal(t, []string{"r1"}, citation.TextCitations)
	assert.Empty(t, citation.ImageCitations)
}

func TestEndIsAlwaysLastAndExactlyOnce(t *testing.T) {
	cases := map[string]*Processor{
		"success": NewProcessor(
			&fakeCompleter{resp: &CompletionResponse{Answer: strptr("ok")}},
			NewSearchStrategy(&fakeRetriever{results: singleRef("r1")}), nil),
		"retrieval failure": NewProcessor(
			&fakeCompleter{},
			NewSearchStrategy(&fakeRetriever{err: errors.New("down")}), nil),
		"completion panic": NewProcessor(
			&fakeCompleter{panicMsg: "boom"},
			NewSearchStrategy(&fakeRetriever{results: singleRef("r1")}), nil),
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			events := runRequest(p, "q", DefaultSearchConfig())
			require.NotEmpty(t, events)

			ends := 0
			for _, env := range events {
				if env.Event == EventEnd {
					ends++
				}
			}
			assert.Equal(t, 1, ends)
			assert.Equal(t, EventEnd, events[len(events)-1].Event)
		})
	}
}

func TestPanicBecomesErrorEvent(t *testing.T) {
	p := NewProcessor(
		&fakeCompleter{panicMsg: "boom"},
		NewSearchStrategy(&fakeRetriever{results: singleRef("r1")}), nil)

	events := runRequest(p, "q", DefaultSearchConfig())

	kinds := eventKinds(events)
	require.Equal(t, EventError, kinds[len(kinds)-2])
	assert.Contains(t, events[len(events)-2].Data.(errorPayload).Message, "boom")
}

func TestKnowledgeAgentFansOutSubQueries(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r1")}
	planner := &fakeCompleter{resp: &CompletionResponse{
		Answer: strptr("breach of contract elements\ndamages for late delivery"),
	}}
	strat := NewKnowledgeAgentStrategy(retriever, planner)

	stream := NewStream()
	em := NewEmitter("req-1", stream)
	results, err := strat.Retrieve(context.Background(), em, "Was the contract breached?", DefaultSearchConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"breach of contract elements", "damages for late delivery"}, retriever.queries)
	// Same ref from both sub-queries deduplicates.
	assert.Len(t, results.References, 1)
	assert.Len(t, results.SearchQueries, 2)
}

func TestKnowledgeAgentFallsBackToRawQuery(t *testing.T) {
	retriever := &fakeRetriever{results: singleRef("r1")}
	planner := &fakeCompleter{err: errors.New("planner down")}
	strat := NewKnowledgeAgentStrategy(retriever, planner)

	stream := NewStream()
	em := NewEmitter("req-1", stream)
	_, err := strat.Retrieve(context.Background(), em, "raw question", DefaultSearchConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"raw question"}, retriever.queries)
}

func TestProcessorPrefersAgentStrategyWhenConfigured(t *testing.T) {
	searchRetriever := &fakeRetriever{results: singleRef("r1")}
	agentRetriever := &fakeRetriever{results: singleRef("r2")}
	completer := &fakeCompleter{resp: &CompletionResponse{Answer: strptr("ok"), TextCitations: []string{"r2"}}}

	p := NewProcessor(completer,
		NewSearchStrategy(searchRetriever),
		NewSearchStrategy(agentRetriever))

	cfg := DefaultSearchConfig()
	cfg.UseKnowledgeAgent = true
	events := runRequest(p, "q", cfg)

	assert.Empty(t, searchRetriever.queries)
	assert.Equal(t, []string{"q"}, agentRetriever.queries)
	assert.Equal(t, []string{"r2"}, events[len(events)-2].Data.(citationPayload).TextCitations)
}
