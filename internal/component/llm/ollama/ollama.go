package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	eino_model "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/ollama/ollama/api"
)

type ChatModelConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	Options *api.Options
}

// ChatModel adapts the native Ollama chat API to the eino model interface.
type ChatModel struct {
	cli   *api.Client
	conf  *ChatModelConfig
	tools []api.Tool
}

func NewChatModel(ctx context.Context, cfg *ChatModelConfig) (*ChatModel, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}
	cli := api.NewClient(base, &http.Client{Timeout: cfg.Timeout})
	return &ChatModel{cli: cli, conf: cfg}, nil
}

func (cm *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...eino_model.Option) (*schema.Message, error) {
	req, err := cm.buildRequest(input, false)
	if err != nil {
		return nil, err
	}

	var out *schema.Message
	err = cm.cli.Chat(ctx, req, func(resp api.ChatResponse) error {
		out = convertMessage(resp.Message)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("ollama returned no message")
	}
	return out, nil
}

func (cm *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...eino_model.Option) (*schema.StreamReader[*schema.Message], error) {
	req, err := cm.buildRequest(input, true)
	if err != nil {
		return nil, err
	}

	sr, sw := schema.Pipe[*schema.Message](8)
	go func() {
		defer sw.Close()
		err := cm.cli.Chat(ctx, req, func(resp api.ChatResponse) error {
			if closed := sw.Send(convertMessage(resp.Message), nil); closed {
				return context.Canceled
			}
			return nil
		})
		if err != nil {
			sw.Send(nil, fmt.Errorf("ollama chat stream failed: %w", err))
		}
	}()
	return sr, nil
}

// WithTools returns a copy bound to the given tool set.
func (cm *ChatModel) WithTools(tools []*schema.ToolInfo) (eino_model.ToolCallingChatModel, error) {
	converted, err := convertTools(tools)
	if err != nil {
		return nil, err
	}
	return &ChatModel{cli: cm.cli, conf: cm.conf, tools: converted}, nil
}

func (cm *ChatModel) buildRequest(input []*schema.Message, stream bool) (*api.ChatRequest, error) {
	msgs := make([]api.Message, 0, len(input))
	for _, m := range input {
		msgs = append(msgs, api.Message{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	req := &api.ChatRequest{
		Model:    cm.conf.Model,
		Messages: msgs,
		Stream:   &stream,
		Tools:    cm.tools,
	}

	if cm.conf.Options != nil {
		raw, err := sonic.Marshal(cm.conf.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode ollama options: %w", err)
		}
		var optMap map[string]any
		if err := sonic.Unmarshal(raw, &optMap); err != nil {
			return nil, fmt.Errorf("failed to decode ollama options: %w", err)
		}
		req.Options = optMap
	}
	return req, nil
}

func convertMessage(msg api.Message) *schema.Message {
	out := &schema.Message{
		Role:    schema.RoleType(msg.Role),
		Content: msg.Content,
	}
	for i, tc := range msg.ToolCalls {
		idx := i
		out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
			Index: &idx,
			Function: schema.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments.String(),
			},
		})
	}
	return out
}

func convertTools(tools []*schema.ToolInfo) ([]api.Tool, error) {
	out := make([]api.Tool, 0, len(tools))
	for _, ti := range tools {
		tool := api.Tool{Type: "function"}
		tool.Function.Name = ti.Name
		tool.Function.Description = ti.Desc

		if ti.ParamsOneOf != nil {
			openAPI, err := ti.ParamsOneOf.ToOpenAPIV3()
			if err != nil {
				return nil, fmt.Errorf("failed to convert params for tool %s: %w", ti.Name, err)
			}
			raw, err := sonic.Marshal(openAPI)
			if err != nil {
				return nil, fmt.Errorf("failed to encode params for tool %s: %w", ti.Name, err)
			}
			if err := sonic.Unmarshal(raw, &tool.Function.Parameters); err != nil {
				return nil, fmt.Errorf("failed to map params for tool %s: %w", ti.Name, err)
			}
		}
		out = append(out, tool)
	}
	return out, nil
}
