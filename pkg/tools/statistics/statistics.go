// Package statistics exposes the Multilead campaign statistics endpoints as
// MCP tools.
package statistics

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

const curvesHelp = "Comma-separated statistic type IDs: 1=PROFILE_VIEW, 2=PROFILE_FOLLOW, 3=INVITATION_SENT, 4=MESSAGE_SENT, 5=INMAIL_SENT, 6=INVITATION_ACCEPTED, 7=MESSAGE_REPLY, 8=INVITATION_ACCEPTED_RATE, 9=MESSAGE_REPLY_RATE, 10=EMAIL_SENT, 11=EMAIL_OPENED, 12=EMAIL_CLICKED, 14=EMAIL_OPEN_RATE, 15=EMAIL_CLICK_RATE, 16=EMAIL_VERIFIED, 17=EMAIL_BOUNCE_RATE"

// Toolset carries the shared gateway client into every statistics handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the statistics tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("get_statistics",
		mcp.WithDescription("Get statistics for all campaigns, or one campaign, within a time range."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID.")),
		mcp.WithNumber("from_timestamp", mcp.Required(), mcp.Description("Statistics start (Unix timestamp).")),
		mcp.WithNumber("to_timestamp", mcp.Required(), mcp.Description("Statistics end (Unix timestamp).")),
		mcp.WithString("curves", mcp.Required(), mcp.Description(curvesHelp)),
		mcp.WithString("time_zone", mcp.Required(), mcp.Description("Timezone for statistics, e.g. America/New_York.")),
		mcp.WithNumber("campaign_id", mcp.Description("Optional campaign ID to restrict statistics to one campaign.")),
	), t.handleGetStatistics)

	s.AddTool(mcp.NewTool("export_statistics_csv",
		mcp.WithDescription("Export statistics for all campaigns as a CSV file."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID.")),
		mcp.WithNumber("from_timestamp", mcp.Required(), mcp.Description("Statistics start (Unix timestamp).")),
		mcp.WithNumber("to_timestamp", mcp.Required(), mcp.Description("Statistics end (Unix timestamp).")),
		mcp.WithString("curves", mcp.Required(), mcp.Description(curvesHelp)),
		mcp.WithString("time_zone", mcp.Required(), mcp.Description("Timezone for statistics, e.g. Europe/Belgrade.")),
	), t.handleExportStatisticsCSV)

	s.AddTool(mcp.NewTool("get_step_statistics",
		mcp.WithDescription("Get per-step statistics for a specific campaign."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID.")),
		mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("Campaign ID to get step statistics for.")),
	), t.handleGetStepStatistics)

	s.AddTool(mcp.NewTool("get_all_campaigns_statistics",
		mcp.WithDescription("Get platform-wide summary statistics (totals) for all campaigns."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID.")),
		mcp.WithNumber("campaign_state", mcp.Description("Campaign state filter (default 1).")),
	), t.handleGetAllCampaignsStatistics)
}

// timeRangeParams builds the from/to/curves/timeZone query shared by the two
// range-based endpoints. The upstream expects a repeated curves key per value.
func timeRangeParams(req mcp.CallToolRequest) (url.Values, error) {
	from, err := tools.GetIntArg(req, "from_timestamp")
	if err != nil {
		return nil, err
	}
	to, err := tools.GetIntArg(req, "to_timestamp")
	if err != nil {
		return nil, err
	}
	rawCurves, err := tools.GetRequiredString(req, "curves")
	if err != nil {
		return nil, err
	}
	curves, err := tools.ParseCommaInts(rawCurves)
	if err != nil {
		return nil, err
	}
	timeZone, err := tools.GetRequiredString(req, "time_zone")
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("from", strconv.Itoa(from))
	params.Set("to", strconv.Itoa(to))
	for _, curve := range curves {
		params.Add("curves", strconv.Itoa(curve))
	}
	params.Set("timeZone", timeZone)
	return params, nil
}

func (t *Toolset) handleGetStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params, err := timeRangeParams(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if campaignID, ok := tools.GetOptionalInt(req, "campaign_id"); ok {
		params.Set("campaignId", strconv.Itoa(campaignID))
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/statistics", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleExportStatisticsCSV(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params, err := timeRangeParams(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/statistics/export_csv", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetStepStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetIntArg(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := url.Values{}
	params.Set("campaignId", strconv.Itoa(campaignID))

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/statistics/steps", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetAllCampaignsStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := url.Values{}
	params.Set("campaignState", strconv.Itoa(tools.GetIntOrDefault(req, "campaign_state", 1)))

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/all_campaigns_statistics", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
