// Package conversations exposes the Multilead inbox endpoints as MCP tools:
// syncing LinkedIn messages, reading threads, and sending replies over both
// email and LinkedIn.
package conversations

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

// Toolset carries the shared gateway client into every conversation handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the inbox and messaging tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("sync_linkedin_messages",
		mcp.WithDescription("Sync all LinkedIn messages for a seat into the platform inbox."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID) to sync.")),
	), t.handleSyncMessages)

	s.AddTool(mcp.NewTool("get_messages_from_a_specific_thread",
		mcp.WithDescription("Retrieve messages from specific conversation threads."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("threads", mcp.Required(), mcp.Description("Comma-separated thread IDs to retrieve messages from.")),
		mcp.WithString("filter_by_step_change_timestamp", mcp.Description("Optional ISO timestamp; only messages updated after it are returned.")),
	), t.handleThreadMessages)

	s.AddTool(mcp.NewTool("get_conversations_by_identifiers",
		mcp.WithDescription("Retrieve conversations matching specific identifiers such as LinkedIn IDs."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("identifiers", mcp.Required(), mcp.Description("Comma-separated identifiers to search for.")),
	), t.handleByIdentifiers)

	s.AddTool(mcp.NewTool("get_unread_conversations",
		mcp.WithDescription("Retrieve conversations that have not been marked as read."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 100.")),
		mcp.WithString("offset", mcp.Description("Pagination offset. Defaults to 0.")),
		mcp.WithString("name", mcp.Description("Optional search filter for contact name.")),
	), t.conversationListHandler("/conversations/unread"))

	s.AddTool(mcp.NewTool("get_other_conversations",
		mcp.WithDescription("Retrieve conversations from the \"All other messages\" section."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 100.")),
		mcp.WithString("offset", mcp.Description("Pagination offset. Defaults to 0.")),
		mcp.WithString("name", mcp.Description("Optional search filter for contact name.")),
	), t.conversationListHandler("/conversations/other"))

	s.AddTool(mcp.NewTool("get_all_conversations",
		mcp.WithDescription("Retrieve conversations from all channels."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 100.")),
		mcp.WithString("offset", mcp.Description("Pagination offset. Defaults to 0.")),
		mcp.WithString("name", mcp.Description("Optional search filter for contact name.")),
		mcp.WithString("tag_ids", mcp.Description("Optional comma-separated tag IDs to filter by.")),
	), t.handleAllConversations)

	s.AddTool(mcp.NewTool("get_campaign_conversations",
		mcp.WithDescription("Retrieve conversations belonging to a specific campaign."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign ID.")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 100.")),
		mcp.WithString("offset", mcp.Description("Pagination offset. Defaults to 0.")),
		mcp.WithString("name", mcp.Description("Optional search filter for contact name.")),
	), t.handleCampaignConversations)

	s.AddTool(mcp.NewTool("get_messages_for_leads",
		mcp.WithDescription("Retrieve conversation messages for specific leads."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("lead_ids", mcp.Description("Optional comma-separated lead IDs.")),
		mcp.WithString("limit", mcp.Description("Maximum number of results. Defaults to 100.")),
	), t.handleLeadMessages)

	s.AddTool(mcp.NewTool("mark_messages_as_seen",
		mcp.WithDescription("Mark all messages in a thread as seen."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("thread", mcp.Required(), mcp.Description("Thread ID to mark as seen.")),
	), t.handleMarkSeen)

	s.AddTool(mcp.NewTool("send_new_email",
		mcp.WithDescription("Send a new email to a recipient without an existing thread."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("recipient", mcp.Required(), mcp.Description("Email address of the recipient.")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Email subject line.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Email body, HTML allowed.")),
		mcp.WithString("signature_id", mcp.Required(), mcp.Description("ID of the signature to use.")),
	), t.handleSendNewEmail)

	s.AddTool(mcp.NewTool("send_email_reply",
		mcp.WithDescription("Send an email reply into an existing thread."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("thread", mcp.Required(), mcp.Description("Thread ID to reply to.")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Email message content.")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("Lead ID associated with the conversation.")),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign ID associated with the conversation.")),
		mcp.WithString("recipient", mcp.Required(), mcp.Description("Email address of the recipient.")),
	), t.handleSendEmailReply)

	s.AddTool(mcp.NewTool("send_linkedin_message",
		mcp.WithDescription("Send a LinkedIn message into an existing conversation."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message content to send.")),
		mcp.WithString("linkedin_user_id", mcp.Required(), mcp.Description("LinkedIn user ID of the recipient.")),
		mcp.WithString("public_identifier", mcp.Required(), mcp.Description("LinkedIn public identifier of the recipient.")),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign ID associated with the conversation.")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("Lead ID associated with the conversation.")),
	), t.handleSendLinkedInMessage)

	s.AddTool(mcp.NewTool("get_lead_messages",
		mcp.WithDescription("Retrieve all conversation messages for a specific lead."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("Lead ID to get messages for.")),
	), t.handleSingleLeadMessages)
}

// seatEndpoint builds the seat-scoped path prefix all inbox endpoints share.
func seatEndpoint(userID, accountID, suffix string) string {
	return fmt.Sprintf("/users/%s/accounts/%s%s", userID, accountID, suffix)
}

// pageParams builds the limit/offset/name query shared by the list endpoints.
func pageParams(req mcp.CallToolRequest) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 100)))
	params.Set("offset", strconv.Itoa(tools.GetIntOrDefault(req, "offset", 0)))
	if name, ok := tools.GetOptionalString(req, "name"); ok {
		params.Set("name", name)
	}
	return params
}

func (t *Toolset) handleSyncMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, "/fetch_conversations"), nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleThreadMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	raw, err := tools.GetRequiredString(req, "threads")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	threads := tools.ParseCommaList(raw)
	if len(threads) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("threads must contain at least one entry")), nil
	}

	params := url.Values{}
	params.Set("threads", tools.JSONList(threads))
	if ts, ok := tools.GetOptionalString(req, "filter_by_step_change_timestamp"); ok {
		params.Set("filterByStepChangeTimestamp", ts)
	}

	result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, "/conversations/threads"), params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleByIdentifiers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	raw, err := tools.GetRequiredString(req, "identifiers")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	identifiers := tools.ParseCommaList(raw)
	if len(identifiers) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("identifiers must contain at least one entry")), nil
	}

	params := url.Values{}
	params.Set("identifiers", tools.JSONList(identifiers))

	result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, "/conversations/identifiers"), params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

// conversationListHandler builds a handler for the list endpoints that differ
// only by path suffix.
func (t *Toolset) conversationListHandler(suffix string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, accountID, err := tools.SeatScope(req)
		if err != nil {
			return tools.ErrorResult(err), nil
		}

		result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, suffix), pageParams(req), nil)
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		return tools.JSONResult(result), nil
	}
}

func (t *Toolset) handleAllConversations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := pageParams(req)
	if tagIDs, ok := tools.GetOptionalString(req, "tag_ids"); ok {
		params.Set("tagIds", tagIDs)
	}

	result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, "/conversations"), params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCampaignConversations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetRequiredString(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := seatEndpoint(userID, accountID, fmt.Sprintf("/campaigns/%s/messages", campaignID))
	result, err := t.client.Execute(ctx, "GET", endpoint, pageParams(req), nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleLeadMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := url.Values{}
	if raw, ok := tools.GetOptionalString(req, "lead_ids"); ok {
		if leadIDs := tools.ParseCommaList(raw); len(leadIDs) > 0 {
			params.Set("leadIds", tools.JSONList(leadIDs))
		}
	}
	params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 100)))

	result, err := t.client.Execute(ctx, "GET", seatEndpoint(userID, accountID, "/conversations/leads"), params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleMarkSeen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	thread, err := tools.GetRequiredString(req, "thread")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := seatEndpoint(userID, accountID, fmt.Sprintf("/conversations/%s/seen", thread))
	result, err := t.client.Execute(ctx, "PATCH", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleSendNewEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	recipient, err := tools.GetRequiredString(req, "recipient")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	subject, err := tools.GetRequiredString(req, "subject")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	content, err := tools.GetRequiredString(req, "content")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	signatureID, err := tools.GetRequiredInt(req, "signature_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"recipient":   recipient,
		"subject":     subject,
		"content":     content,
		"signatureId": signatureID,
	}

	endpoint := seatEndpoint(userID, accountID, "/conversations/send_email_manually")
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleSendEmailReply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	thread, err := tools.GetRequiredString(req, "thread")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	message, err := tools.GetRequiredString(req, "message")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	leadID, err := tools.GetRequiredInt(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetRequiredInt(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	recipient, err := tools.GetRequiredString(req, "recipient")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"message":    message,
		"leadId":     leadID,
		"campaignId": campaignID,
		"recipient":  recipient,
	}

	endpoint := seatEndpoint(userID, accountID, fmt.Sprintf("/conversations/%s/email", thread))
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleSendLinkedInMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	message, err := tools.GetRequiredString(req, "message")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	linkedinUserID, err := tools.GetRequiredInt(req, "linkedin_user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	publicIdentifier, err := tools.GetRequiredString(req, "public_identifier")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	campaignID, err := tools.GetRequiredInt(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	leadID, err := tools.GetRequiredInt(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"message":          message,
		"linkedinUserId":   linkedinUserID,
		"publicIdentifier": publicIdentifier,
		"campaignId":       campaignID,
		"leadId":           leadID,
	}

	endpoint := seatEndpoint(userID, accountID, "/conversations/send_message")
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleSingleLeadMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := seatEndpoint(userID, accountID, fmt.Sprintf("/conversations/leads/%s", leadID))
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
