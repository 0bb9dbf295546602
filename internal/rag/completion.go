package rag

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	eino_model "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// CompletionResponse is the structured shape the model is asked to produce.
// Answer is nil until the model has emitted at least part of the answer
// field, which matters for streaming snapshots.
type CompletionResponse struct {
	Answer         *string  `json:"answer"`
	TextCitations  []string `json:"text_citations"`
	ImageCitations []string `json:"image_citations"`
}

// CompletionStream yields successive snapshots of a structured response as
// the model streams. Recv returns io.EOF when the provider is exhausted.
type CompletionStream interface {
	Recv() (*CompletionResponse, error)
	Close()
}

// ChatCompleter is the completion provider consumed by the processor.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []*schema.Message) (*CompletionResponse, error)
	CompleteStream(ctx context.Context, messages []*schema.Message) (CompletionStream, error)
}

// ModelCompleter adapts an eino chat model to the structured completion
// contract. The model is prompted elsewhere to respond with the JSON shape of
// CompletionResponse; parsing here tolerates code fences and, as a last
// resort, treats the whole reply as the answer text.
type ModelCompleter struct {
	cm eino_model.BaseChatModel
}

func NewModelCompleter(cm eino_model.BaseChatModel) *ModelCompleter {
	return &ModelCompleter{cm: cm}
}

func (c *ModelCompleter) Complete(ctx context.Context, messages []*schema.Message) (*CompletionResponse, error) {
	msg, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if msg == nil || msg.Content == "" {
		return nil, nil
	}
	return parseCompletion(msg.Content), nil
}

func (c *ModelCompleter) CompleteStream(ctx context.Context, messages []*schema.Message) (CompletionStream, error) {
	sr, err := c.cm.Stream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion stream failed: %w", err)
	}

	ms := &modelStream{
		ch:   make(chan *CompletionResponse, 8),
		done: make(chan struct{}),
	}

	go func() {
		defer close(ms.ch)
		defer sr.Close()

		var buf strings.Builder
		for {
			chunk, err := sr.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				ms.err = fmt.Errorf("chat completion stream failed: %w", err)
				return
			}
			if chunk == nil || chunk.Content == "" {
				continue
			}
			buf.WriteString(chunk.Content)
			if answer, ok := extractAnswer(buf.String()); ok {
				if !ms.push(&CompletionResponse{Answer: &answer}) {
					return
				}
			}
		}
		if buf.Len() > 0 {
			// Final snapshot carries the citations from the full parse.
			ms.push(parseCompletion(buf.String()))
		}
	}()

	return ms, nil
}

type modelStream struct {
	ch   chan *CompletionResponse
	done chan struct{}
	err  error
}

func (s *modelStream) push(resp *CompletionResponse) bool {
	select {
	case s.ch <- resp:
		return true
	case <-s.done:
		return false
	}
}

func (s *modelStream) Recv() (*CompletionResponse, error) {
	resp, ok := <-s.ch
	if !ok {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	return resp, nil
}

func (s *modelStream) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// parseCompletion decodes the model reply. Replies that are not the expected
// JSON object become a bare answer with no citations.
func parseCompletion(content string) *CompletionResponse {
	trimmed := stripCodeFence(content)

	var resp CompletionResponse
	if err := sonic.Unmarshal([]byte(trimmed), &resp); err == nil && resp.Answer != nil {
		return &resp
	}

	answer := strings.TrimSpace(content)
	return &CompletionResponse{Answer: &answer}
}

func stripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

// extractAnswer pulls the (possibly unterminated) value of the "answer" key
// out of a partially received JSON object.
func extractAnswer(s string) (string, bool) {
	idx := strings.Index(s, `"answer"`)
	if idx < 0 {
		return "", false
	}
	rest := s[idx+len(`"answer"`):]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return "", false
	}
	rest = strings.TrimLeft(rest[colon+1:], " \t\r\n")
	if len(rest) == 0 || rest[0] != '"' {
		return "", false
	}
	rest = rest[1:]

	end := -1
	for i := 0; i < len(rest); i++ {
		if rest[i] == '\\' {
			i++
			continue
		}
		if rest[i] == '"' {
			end = i
			break
		}
	}

	raw := rest
	if end >= 0 {
		raw = rest[:end]
	} else if trailingBackslashes(raw)%2 == 1 {
		// Drop a half-received escape sequence.
		raw = raw[:len(raw)-1]
	}

	var out string
	if err := sonic.Unmarshal([]byte(`"`+raw+`"`), &out); err != nil {
		return "", false
	}
	return out, true
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
