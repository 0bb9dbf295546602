package agent

import (
	"context"
	"fmt"

	eino_model "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	"litigator/config"
)

const defaultMaxStep = 10

const defaultPrompt = "You are a litigation assistant working over a structured case file. Use the available tools to look up facts, exhibits and causes of action before answering."

// Orchestrator runs a tool-calling agent over the case file. Tools come from
// the local Toolset plus any OpenAPI and MCP servers named in config.
type Orchestrator struct {
	agent *react.Agent
	tmpl  prompt.ChatTemplate
}

func NewOrchestrator(ctx context.Context, llm eino_model.ToolCallingChatModel, tools []tool.BaseTool, cfg config.AgentConfig) (*Orchestrator, error) {
	maxStep := cfg.MaxStep
	if maxStep <= 0 {
		maxStep = defaultMaxStep
	}
	systemPrompt := cfg.Prompt
	if systemPrompt == "" {
		systemPrompt = defaultPrompt
	}

	agentConfig := &react.AgentConfig{
		ToolCallingModel: llm,
		MaxStep:          maxStep,
	}
	if len(tools) > 0 {
		agentConfig.ToolsConfig = compose.ToolsNodeConfig{Tools: tools}
	}

	agt, err := react.NewAgent(ctx, agentConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	tmpl := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{content}"),
	)

	return &Orchestrator{agent: agt, tmpl: tmpl}, nil
}

func (o *Orchestrator) Execute(ctx context.Context, query string, history []*schema.Message) (string, error) {
	messages, err := o.buildMessages(ctx, query, history)
	if err != nil {
		return "", err
	}
	out, err := o.agent.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("agent execution failed: %w", err)
	}
	return out.Content, nil
}

func (o *Orchestrator) Stream(ctx context.Context, query string, history []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
	messages, err := o.buildMessages(ctx, query, history)
	if err != nil {
		return nil, err
	}
	sr, err := o.agent.Stream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("agent stream failed: %w", err)
	}
	return sr, nil
}

func (o *Orchestrator) buildMessages(ctx context.Context, query string, history []*schema.Message) ([]*schema.Message, error) {
	messages, err := o.tmpl.Format(ctx, map[string]any{
		"history": history,
		"content": query,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format agent prompt: %w", err)
	}
	return messages, nil
}
