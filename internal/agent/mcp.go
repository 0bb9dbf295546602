package agent

import (
	"context"
	"fmt"

	mcpp "github.com/cloudwego/eino-ext/components/tool/mcp"
	"github.com/cloudwego/eino/components/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// LoadMCPTools connects to each MCP server over SSE and collects the tools it
// advertises.
func LoadMCPTools(ctx context.Context, serverURLs []string) ([]tool.BaseTool, error) {
	var tools []tool.BaseTool
	for _, serverURL := range serverURLs {
		cli, err := client.NewSSEMCPClient(serverURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create mcp client for %s: %w", serverURL, err)
		}
		if err := cli.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start mcp client for %s: %w", serverURL, err)
		}

		initRequest := mcp.InitializeRequest{}
		initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
		initRequest.Params.ClientInfo = mcp.Implementation{
			Name:    "litigator",
			Version: "1.0.0",
		}
		if _, err := cli.Initialize(ctx, initRequest); err != nil {
			return nil, fmt.Errorf("failed to initialize mcp client for %s: %w", serverURL, err)
		}

		serverTools, err := mcpp.GetTools(ctx, &mcpp.Config{Cli: cli})
		if err != nil {
			return nil, fmt.Errorf("failed to get mcp tools from %s: %w", serverURL, err)
		}
		tools = append(tools, serverTools...)
	}
	return tools, nil
}
