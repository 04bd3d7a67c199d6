// Package settings exposes the Multilead settings endpoints as MCP tools.
package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools"
)

// Toolset carries the shared gateway client into the settings handlers.
type Toolset struct {
	client *multilead.Client
}

// Register wires the settings tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("get_description_for_id_type",
		mcp.WithDescription("Resolve internal identity type IDs to human-readable labels."),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated identity type IDs to look up.")),
	), t.handleIdentityTypes)
}

func (t *Toolset) handleIdentityTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := tools.GetRequiredString(req, "ids")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	ids := tools.ParseCommaList(raw)
	if len(ids) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("ids must contain at least one entry")), nil
	}

	endpoint := fmt.Sprintf("/identityType/ids/%s", strings.Join(ids, ","))
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
