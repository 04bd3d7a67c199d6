// Package blacklist exposes the Multilead keyword blacklist endpoints as MCP
// tools. The CSV import endpoints require multipart uploads the server does
// not support; those tools always fail with guidance toward the keyword-list
// alternatives.
package blacklist

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools"
)

const (
	keywordTypeHelp    = "Type of keyword."
	comparisonTypeHelp = "How to match keywords."
)

var (
	keywordTypes    = []string{"company_name", "email", "domain", "full_name", "profile_url", "job_title"}
	comparisonTypes = []string{"exact", "contains", "starts_with", "ends_with"}
)

// Toolset carries the shared gateway client into every blacklist handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the blacklist tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("add_keywords_to_global_blacklist",
		mcp.WithDescription("Add keywords to the team's global blacklist."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("keywords", mcp.Required(), mcp.Description("Comma-separated keywords to blacklist.")),
		mcp.WithString("keyword_type", mcp.Required(), mcp.Description(keywordTypeHelp), mcp.Enum(keywordTypes...)),
		mcp.WithString("comparison_type", mcp.Required(), mcp.Description(comparisonTypeHelp), mcp.Enum(comparisonTypes...)),
	), t.handleAddGlobalKeywords)

	s.AddTool(mcp.NewTool("add_keywords_to_blacklist",
		mcp.WithDescription("Add keywords to a seat's blacklist."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("keywords", mcp.Required(), mcp.Description("Comma-separated keywords to blacklist.")),
		mcp.WithString("keyword_type", mcp.Required(), mcp.Description(keywordTypeHelp), mcp.Enum(keywordTypes...)),
		mcp.WithString("comparison_type", mcp.Required(), mcp.Description(comparisonTypeHelp), mcp.Enum(comparisonTypes...)),
	), t.handleAddSeatKeywords)

	s.AddTool(mcp.NewTool("import_keywords_to_global_blacklist_csv",
		mcp.WithDescription("Import keywords to the global blacklist from a CSV file. Not supported by this server; use add_keywords_to_global_blacklist instead."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("csv_file_path", mcp.Required(), mcp.Description("Path to a CSV file containing keywords.")),
		mcp.WithString("keyword_type", mcp.Required(), mcp.Description(keywordTypeHelp), mcp.Enum(keywordTypes...)),
		mcp.WithString("comparison_type", mcp.Required(), mcp.Description(comparisonTypeHelp), mcp.Enum(comparisonTypes...)),
	), handleCSVImportUnsupported("add_keywords_to_global_blacklist"))

	s.AddTool(mcp.NewTool("import_keywords_to_blacklist_csv",
		mcp.WithDescription("Import keywords to a seat's blacklist from a CSV file. Not supported by this server; use add_keywords_to_blacklist instead."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("csv_file_path", mcp.Required(), mcp.Description("Path to a CSV file containing keywords.")),
		mcp.WithString("keyword_type", mcp.Required(), mcp.Description(keywordTypeHelp), mcp.Enum(keywordTypes...)),
		mcp.WithString("comparison_type", mcp.Required(), mcp.Description(comparisonTypeHelp), mcp.Enum(comparisonTypes...)),
	), handleCSVImportUnsupported("add_keywords_to_blacklist"))
}

// keywordBody builds the shared add-keyword payload. The source field marks
// manual additions, matching the web interface behavior.
func keywordBody(req mcp.CallToolRequest) (map[string]any, error) {
	raw, err := tools.GetRequiredString(req, "keywords")
	if err != nil {
		return nil, err
	}
	keywords := tools.ParseCommaList(raw)
	if len(keywords) == 0 {
		return nil, multilead.NewValidationError("keywords must contain at least one entry")
	}

	keywordType, err := tools.GetRequiredString(req, "keyword_type")
	if err != nil {
		return nil, err
	}
	comparisonType, err := tools.GetRequiredString(req, "comparison_type")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"keywords":       keywords,
		"type":           keywordType,
		"comparisonType": comparisonType,
		"source":         "manual",
	}, nil
}

func (t *Toolset) handleAddGlobalKeywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, err := tools.GetRequiredString(req, "team_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	body, err := keywordBody(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/teams/%s/users/%s/global_blacklists/add_keyword", teamID, userID)
	result, err := t.client.Execute(ctx, "PATCH", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleAddSeatKeywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	body, err := keywordBody(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/blacklists/add_keyword", userID, accountID)
	result, err := t.client.Execute(ctx, "PATCH", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

// handleCSVImportUnsupported returns a handler that always fails with
// guidance, before any network activity.
func handleCSVImportUnsupported(alternative string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"CSV file upload is not yet implemented in this MCP server. "+
				"Use the %s tool with a list of keywords instead, "+
				"or upload the CSV file directly via the Multilead web interface.", alternative)), nil
	}
}
