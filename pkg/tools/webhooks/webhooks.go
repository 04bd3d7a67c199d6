// Package webhooks exposes the Multilead webhook subscription endpoints as
// MCP tools. Non-global webhooks are scoped to specific campaigns; global
// webhooks fire for every campaign in the account.
package webhooks

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

const webhooksHelp = `Webhook configurations as a JSON array, e.g. [{"url": "https://example.com/hook", "events": ["lead_replied"]}].`

// Toolset carries the shared gateway client into every webhook handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the webhook tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("create_webhook",
		mcp.WithDescription("Create non-global webhooks scoped to specific campaigns."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("webhooks", mcp.Required(), mcp.Description(webhooksHelp+` Each entry may carry an optional campaignId.`)),
	), t.webhookCreateHandler("/webhooks"))

	s.AddTool(mcp.NewTool("create_global_webhook",
		mcp.WithDescription("Create global webhooks that fire for all campaigns in the account."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("webhooks", mcp.Required(), mcp.Description(webhooksHelp)),
	), t.webhookCreateHandler("/global_webhook"))

	s.AddTool(mcp.NewTool("list_webhooks",
		mcp.WithDescription("List the non-global webhooks configured for a seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 30.")),
		mcp.WithString("offset", mcp.Description("Pagination offset. Defaults to 0.")),
	), t.webhookListHandler("/webhooks"))

	s.AddTool(mcp.NewTool("list_global_webhooks",
		mcp.WithDescription("List the global webhooks configured for a seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 30.")),
		mcp.WithString("offset", mcp.Description("Pagination offset. Defaults to 0.")),
	), t.webhookListHandler("/global_webhooks"))

	s.AddTool(mcp.NewTool("delete_webhook",
		mcp.WithDescription("Delete a non-global webhook by ID."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("webhook_id", mcp.Required(), mcp.Description("Webhook ID to delete.")),
	), t.handleDeleteWebhook)

	s.AddTool(mcp.NewTool("delete_global_webhook",
		mcp.WithDescription("Delete a global webhook by matching its URL and event subscriptions."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("array_of_actions", mcp.Required(), mcp.Description("Comma-separated event action types the webhook was subscribed to.")),
		mcp.WithString("array_of_ids", mcp.Required(), mcp.Description("Comma-separated resource IDs associated with the webhook.")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Webhook URL to delete.")),
	), t.handleDeleteGlobalWebhook)
}

func seatEndpoint(userID, accountID, suffix string) string {
	return fmt.Sprintf("/users/%s/accounts/%s%s", userID, accountID, suffix)
}

// webhookCreateHandler builds a handler for the two create endpoints, which
// share the {"webhooks": [...]} payload shape.
func (t *Toolset) webhookCreateHandler(suffix string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, accountID, err := tools.SeatScope(req)
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		webhooks, err := tools.ParseJSONArrayArg(req, "webhooks")
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		if len(webhooks) == 0 {
			return tools.ErrorResult(multilead.NewValidationError("webhooks must contain at least one entry")), nil
		}

		body := map[string]any{"webhooks": webhooks}
		result, err := t.client.Execute(ctx, "POST", seatEndpoint(userID, accountID, suffix), nil, body)
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		return tools.JSONResult(result), nil
	}
}

// webhookListHandler builds a handler for the two list endpoints.
func (t *Toolset) webhookListHandler(suffix string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, accountID, err := tools.SeatScope(req)
		if err != nil {
			return tools.ErrorResult(err), nil
		}

		params := url.Values{}
		params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 30)))
		params.Set("offset", strconv.Itoa(tools.GetIntOrDefault(req, "offset", 0)))

		result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, suffix), params, nil)
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		return tools.JSONResult(result), nil
	}
}

func (t *Toolset) handleDeleteWebhook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	webhookID, err := tools.GetRequiredString(req, "webhook_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := seatEndpoint(userID, accountID, fmt.Sprintf("/webhooks/%s", webhookID))
	result, err := t.client.Execute(ctx, "DELETE", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleDeleteGlobalWebhook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	rawActions, err := tools.GetRequiredString(req, "array_of_actions")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	actions := tools.ParseCommaList(rawActions)
	if len(actions) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("array_of_actions must contain at least one entry")), nil
	}
	rawIDs, err := tools.GetRequiredString(req, "array_of_ids")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	ids, err := tools.ParseCommaInts(rawIDs)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	hookURL, err := tools.GetRequiredString(req, "url")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"arrayOfActions": actions,
		"arrayOfIds":     ids,
		"url":            hookURL,
	}

	result, err := t.client.Execute(ctx, "POST", seatEndpoint(userID, accountID, "/delete_global_webhook"), nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
