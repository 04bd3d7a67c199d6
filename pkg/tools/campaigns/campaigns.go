// Package campaigns exposes the Multilead campaign management and export
// endpoints as MCP tools.
package campaigns

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools"
)

// Toolset carries the shared gateway client into every campaign handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the campaign tools and the campaign analysis prompt onto
// the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("export_all_campaigns",
		mcp.WithDescription("Export all campaigns in CSV format."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
	), t.handleExportAllCampaigns)

	s.AddTool(mcp.NewTool("export_leads_from_campaign",
		append([]mcp.ToolOption{
			mcp.WithDescription("Export leads from a specific campaign in CSV format with advanced filtering."),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The ID of the campaign to export leads from.")),
		}, tools.LeadFilterOptions()...)...,
	), t.handleExportLeadsFromCampaign)

	s.AddTool(mcp.NewTool("get_campaign_info",
		mcp.WithDescription("Retrieve detailed information about a specific campaign, including name, status, steps, and statistics."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The ID of the campaign.")),
	), t.handleGetCampaignInfo)

	s.AddTool(mcp.NewTool("get_campaign_list",
		mcp.WithDescription("Retrieve the list of campaigns with filtering and sorting."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithNumber("campaign_state", mcp.Description("Campaign status filter (1=ACTIVE, 2=DRAFT, 3=ARCHIVED, default 1).")),
		mcp.WithString("sort_order", mcp.Description("Sort direction."), mcp.Enum("ASC", "DESC")),
		mcp.WithString("sort_column", mcp.Description("Column to sort by."), mcp.Enum("isActive", "name", "createdAt")),
		mcp.WithNumber("limit", mcp.Description("Number of results to return (default 30).")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset (default 0).")),
	), t.handleGetCampaignList)

	s.AddTool(mcp.NewTool("create_lead_source",
		mcp.WithDescription("Create a lead source (e.g. a Sales Navigator search URL) and link it to a campaign for automatic lead import."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user who owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the seat where the campaign is located.")),
		mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("The ID of the campaign to link the lead source to.")),
		mcp.WithString("lead_source_url", mcp.Required(), mcp.Description("URL of the lead source.")),
		mcp.WithString("lead_source_type", mcp.Required(), mcp.Description("Type of lead source, e.g. SALES_NAVIGATOR.")),
		mcp.WithNumber("dashboard", mcp.Description("Dashboard ID.")),
		mcp.WithNumber("auto_reuse", mcp.Description("Auto-reuse setting (1 to enable).")),
		mcp.WithNumber("auto_reuse_interval", mcp.Description("Auto-reuse interval in days.")),
	), t.handleCreateLeadSource)

	s.AddTool(mcp.NewTool("create_campaign_from_template",
		mcp.WithDescription("Create a new campaign from a saved sequence template. The campaign goes live immediately after creation."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("sequence_template_id", mcp.Required(), mcp.Description("The ID of the sequence template to use.")),
		mcp.WithString("campaign_name", mcp.Required(), mcp.Description("Name for the new campaign.")),
		mcp.WithString("lead_source_url", mcp.Description("Optional lead source URL to attach to the campaign.")),
	), t.handleCreateCampaignFromTemplate)

	addCampaignAnalysisPrompt(s)
}

func (t *Toolset) handleExportAllCampaigns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/campaigns/export", userID, accountID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleExportLeadsFromCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetRequiredString(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params, err := tools.LeadFilterParams(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/export", userID, accountID, campaignID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetCampaignInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetRequiredString(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/details", userID, accountID, campaignID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetCampaignList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 30)))
	params.Set("offset", strconv.Itoa(tools.GetIntOrDefault(req, "offset", 0)))
	params.Set("campaignState", strconv.Itoa(tools.GetIntOrDefault(req, "campaign_state", 1)))

	if order, ok := tools.GetOptionalString(req, "sort_order"); ok {
		params.Set("sortOrder", order)
	}
	if column, ok := tools.GetOptionalString(req, "sort_column"); ok {
		params.Set("sortColumn", column)
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/campaigns", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCreateLeadSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetIntArg(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	sourceURL, err := tools.GetRequiredString(req, "lead_source_url")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	sourceType, err := tools.GetRequiredString(req, "lead_source_type")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	leadSource := map[string]any{
		"campaignId":     campaignID,
		"leadSourceUrl":  sourceURL,
		"leadSourceType": sourceType,
	}
	if dashboard, ok := tools.GetOptionalInt(req, "dashboard"); ok {
		leadSource["dashboard"] = dashboard
	}
	if autoReuse, ok := tools.GetOptionalInt(req, "auto_reuse"); ok {
		leadSource["autoReuse"] = autoReuse
	}
	if interval, ok := tools.GetOptionalInt(req, "auto_reuse_interval"); ok {
		leadSource["autoReuseInterval"] = interval
	}

	body := map[string]any{"leadSources": []any{leadSource}}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/lead_sources", userID, accountID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCreateCampaignFromTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	templateID, err := tools.GetRequiredString(req, "sequence_template_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	name, err := tools.GetRequiredString(req, "campaign_name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"sequenceTemplateId": templateID,
		"name":               name,
	}
	if sourceURL, ok := tools.GetOptionalString(req, "lead_source_url"); ok {
		body["leadSourceUrl"] = sourceURL
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/campaigns", userID, accountID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
