package agent

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"gopkg.in/yaml.v3"
)

// Remote tool servers advertise their operations with an OpenAPI document at
// /openapi.yaml. Each operation becomes a callable tool that forwards the
// model's arguments as path, query or body parameters.

const openAPIPath = "/openapi.yaml"

type openAPIDoc struct {
	Info struct {
		Title string `yaml:"title"`
	} `yaml:"info"`
	Paths map[string]map[string]openAPIOperation `yaml:"paths"`
}

type openAPIOperation struct {
	OperationID string             `yaml:"operationId"`
	Summary     string             `yaml:"summary"`
	Description string             `yaml:"description"`
	Parameters  []openAPIParameter `yaml:"parameters"`
	RequestBody *struct {
		Content map[string]struct {
			Schema openAPISchema `yaml:"schema"`
		} `yaml:"content"`
	} `yaml:"requestBody"`
}

type openAPIParameter struct {
	Name     string        `yaml:"name"`
	In       string        `yaml:"in"` // path/query
	Required bool          `yaml:"required"`
	Schema   openAPISchema `yaml:"schema"`
	Desc     string        `yaml:"description"`
}

type openAPISchema struct {
	Type       string                   `yaml:"type"`
	Desc       string                   `yaml:"description"`
	Required   []string                 `yaml:"required"`
	Properties map[string]openAPISchema `yaml:"properties"`
}

// DiscoverOpenAPITools fetches a server's OpenAPI document and converts every
// operation with an operationId into a tool. Operations without one are
// skipped with a log line.
func DiscoverOpenAPITools(ctx context.Context, baseURL string) ([]tool.BaseTool, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(baseURL, "/")+openAPIPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build discovery request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch openapi document from %s: %w", baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openapi document request to %s returned %d", baseURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read openapi document: %w", err)
	}

	var doc openAPIDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}

	var tools []tool.BaseTool
	for path, operations := range doc.Paths {
		for method, op := range operations {
			if op.OperationID == "" {
				log.Printf("[Agent] skipping %s %s on %s: no operationId", method, path, baseURL)
				continue
			}
			t, err := newRemoteTool(httpClient, baseURL, strings.ToUpper(method), path, op)
			if err != nil {
				return nil, fmt.Errorf("failed to build tool %s: %w", op.OperationID, err)
			}
			tools = append(tools, t)
		}
	}
	return tools, nil
}

// remoteTool is one OpenAPI operation bound to its server. The raw response
// body is handed back to the model unmodified.
type remoteTool struct {
	httpClient *http.Client
	baseURL    string
	method     string
	path       string
	op         openAPIOperation
	info       *schema.ToolInfo
}

func newRemoteTool(httpClient *http.Client, baseURL, method, path string, op openAPIOperation) (tool.BaseTool, error) {
	desc := op.Summary
	if desc == "" {
		desc = op.Description
	}
	return &remoteTool{
		httpClient: httpClient,
		baseURL:    baseURL,
		method:     method,
		path:       path,
		op:         op,
		info: &schema.ToolInfo{
			Name:        op.OperationID,
			Desc:        desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(operationParams(op)),
		},
	}, nil
}

func (t *remoteTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return t.info, nil
}

func (t *remoteTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var args map[string]any
	if argumentsInJSON != "" {
		if err := sonic.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for tool %s: %w", t.op.OperationID, err)
		}
	}
	return invokeRemote(ctx, t.httpClient, t.baseURL, t.method, t.path, t.op, args)
}

func operationParams(op openAPIOperation) map[string]*schema.ParameterInfo {
	params := make(map[string]*schema.ParameterInfo)
	for _, p := range op.Parameters {
		params[p.Name] = &schema.ParameterInfo{
			Type:     dataType(p.Schema.Type),
			Desc:     p.Desc,
			Required: p.Required || p.In == "path",
		}
	}
	if op.RequestBody != nil {
		if content, ok := op.RequestBody.Content["application/json"]; ok {
			required := make(map[string]bool, len(content.Schema.Required))
			for _, name := range content.Schema.Required {
				required[name] = true
			}
			for name, prop := range content.Schema.Properties {
				params[name] = &schema.ParameterInfo{
					Type:     dataType(prop.Type),
					Desc:     prop.Desc,
					Required: required[name],
				}
			}
		}
	}
	return params
}

func dataType(t string) schema.DataType {
	switch t {
	case "integer":
		return schema.Integer
	case "number":
		return schema.Number
	case "boolean":
		return schema.Boolean
	case "array":
		return schema.Array
	case "object":
		return schema.Object
	default:
		return schema.String
	}
}

func invokeRemote(ctx context.Context, httpClient *http.Client, baseURL, method, path string, op openAPIOperation, args map[string]any) (string, error) {
	target := path
	query := url.Values{}
	body := make(map[string]any)

	consumed := make(map[string]bool)
	for _, p := range op.Parameters {
		val, ok := args[p.Name]
		if !ok {
			continue
		}
		consumed[p.Name] = true
		switch p.In {
		case "path":
			target = strings.ReplaceAll(target, "{"+p.Name+"}", fmt.Sprint(val))
		case "query":
			query.Set(p.Name, fmt.Sprint(val))
		}
	}
	for name, val := range args {
		if !consumed[name] {
			body[name] = val
		}
	}

	endpoint := strings.TrimSuffix(baseURL, "/") + target
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reader io.Reader
	if len(body) > 0 && method != http.MethodGet {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode tool arguments: %w", err)
		}
		reader = strings.NewReader(string(payload))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return "", fmt.Errorf("failed to build tool request: %w", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tool call %s failed: %w", op.OperationID, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read tool response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("tool call %s returned %d: %s", op.OperationID, resp.StatusCode, string(out))
	}
	return string(out), nil
}
