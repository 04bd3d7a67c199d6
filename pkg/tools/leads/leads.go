// Package leads exposes the Multilead lead lifecycle and tagging endpoints
// as MCP tools.
package leads

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools"
)

// Toolset carries the shared gateway client into every lead handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the lead tools and the lead enrichment prompt onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("create_lead",
		mcp.WithDescription("Create a new lead in Multilead. Note: this endpoint may not be available in all Multilead API versions; use campaign-scoped lead tools as an alternative."),
		mcp.WithString("email", mcp.Required(), mcp.Description("Lead email address.")),
		mcp.WithString("first_name", mcp.Description("Lead first name.")),
		mcp.WithString("last_name", mcp.Description("Lead last name.")),
		mcp.WithString("company", mcp.Description("Company name.")),
		mcp.WithString("title", mcp.Description("Job title.")),
		mcp.WithString("phone", mcp.Description("Phone number.")),
		mcp.WithString("tags", mcp.Description("Comma-separated list of tags to assign.")),
		mcp.WithString("custom_fields", mcp.Description("JSON object of custom field key-value pairs.")),
	), t.handleCreateLead)

	s.AddTool(mcp.NewTool("get_lead",
		mcp.WithDescription("Retrieve a lead by ID."),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The unique identifier of the lead.")),
	), t.handleGetLead)

	s.AddTool(mcp.NewTool("list_leads",
		mcp.WithDescription("List and filter leads with pagination."),
		mcp.WithString("tags", mcp.Description("Comma-separated tags to filter by.")),
		mcp.WithString("company", mcp.Description("Filter by company name.")),
		mcp.WithString("created_after", mcp.Description("Only leads created after this ISO 8601 datetime.")),
		mcp.WithString("created_before", mcp.Description("Only leads created before this ISO 8601 datetime.")),
		mcp.WithNumber("limit", mcp.Description("Number of results to return (1-1000, default 100).")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset (default 0).")),
	), t.handleListLeads)

	s.AddTool(mcp.NewTool("update_lead",
		mcp.WithDescription("Update an existing lead's properties. At least one field must be provided."),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The unique identifier of the lead.")),
		mcp.WithString("email", mcp.Description("New email address.")),
		mcp.WithString("first_name", mcp.Description("New first name.")),
		mcp.WithString("last_name", mcp.Description("New last name.")),
		mcp.WithString("company", mcp.Description("New company name.")),
		mcp.WithString("title", mcp.Description("New job title.")),
		mcp.WithString("phone", mcp.Description("New phone number.")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags, replacing the existing tags.")),
		mcp.WithString("custom_fields", mcp.Description("JSON object of custom fields to merge with existing ones.")),
	), t.handleUpdateLead)

	s.AddTool(mcp.NewTool("delete_lead",
		mcp.WithDescription("Delete a lead by ID."),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The unique identifier of the lead to delete.")),
	), t.handleDeleteLead)

	s.AddTool(mcp.NewTool("add_leads_to_campaign",
		mcp.WithDescription("Add a new lead to a selected campaign. Either profile_url or email is required."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The ID of the campaign to add the lead to.")),
		mcp.WithString("profile_url", mcp.Description("LinkedIn profile URL of the lead (required if email is not provided).")),
		mcp.WithString("email", mcp.Description("Email address of the lead (required if profile_url is not provided).")),
		mcp.WithString("custom_fields", mcp.Description("JSON object of additional lead fields, e.g. {\"first_name\": \"John\"}.")),
	), t.handleAddLeadsToCampaign)

	s.AddTool(mcp.NewTool("update_lead_in_campaign",
		mcp.WithDescription("Update one or more variables for a lead in a specified campaign and LinkedIn account."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The ID of the campaign.")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The ID of the lead to update.")),
		mcp.WithString("linkedin_account_id", mcp.Required(), mcp.Description("The LinkedIn account ID.")),
		mcp.WithString("changed_values", mcp.Required(), mcp.Description("JSON object of field names and new values, built-in (e.g. businessEmail) or custom.")),
	), t.handleUpdateLeadInCampaign)

	s.AddTool(mcp.NewTool("get_leads_from_thread",
		mcp.WithDescription("Retrieve leads who are part of a specific conversation thread."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("thread_id", mcp.Required(), mcp.Description("The ID of the conversation thread.")),
	), t.handleGetLeadsFromThread)

	s.AddTool(mcp.NewTool("get_tags_for_leads",
		mcp.WithDescription("Retrieve tags for specific leads."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("lead_ids", mcp.Required(), mcp.Description("Comma-separated lead IDs whose tags to retrieve.")),
	), t.handleGetTagsForLeads)

	s.AddTool(mcp.NewTool("assign_tag_to_lead",
		mcp.WithDescription("Add a tag to a specific lead."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The ID of the lead.")),
		mcp.WithString("tag_id", mcp.Required(), mcp.Description("The ID of the tag to assign.")),
	), t.handleAssignTagToLead)

	s.AddTool(mcp.NewTool("remove_tag_from_lead",
		mcp.WithDescription("Remove a tag from a specific lead."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The ID of the lead.")),
		mcp.WithString("tag_id", mcp.Required(), mcp.Description("The ID of the tag to remove.")),
	), t.handleRemoveTagFromLead)

	s.AddTool(mcp.NewTool("get_linkedin_user_info",
		mcp.WithDescription("Retrieve LinkedIn profile information for a user you previously started a conversation with."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("linkedin_user_id", mcp.Required(), mcp.Description("The LinkedIn user ID.")),
	), t.handleGetLinkedInUserInfo)

	s.AddTool(mcp.NewTool("pause_lead_execution",
		mcp.WithDescription("Pause all upcoming campaign steps for a specific lead."),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The ID of the lead to pause.")),
	), t.handlePauseLeadExecution)

	s.AddTool(mcp.NewTool("resume_lead_execution",
		mcp.WithDescription("Resume the campaign workflow for a previously paused lead."),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The ID of the lead to resume.")),
	), t.handleResumeLeadExecution)

	s.AddTool(mcp.NewTool("get_leads_from_campaign",
		append([]mcp.ToolOption{
			mcp.WithDescription("Retrieve leads from a specific campaign with advanced filtering. Filters within a group use OR logic, groups combine with AND."),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
			mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The ID of the campaign.")),
			mcp.WithNumber("limit", mcp.Description("Number of results to return (default 30).")),
			mcp.WithNumber("offset", mcp.Description("Pagination offset (default 0).")),
		}, tools.LeadFilterOptions()...)...,
	), t.handleGetLeadsFromCampaign)

	s.AddTool(mcp.NewTool("get_leads_from_seat",
		append([]mcp.ToolOption{
			mcp.WithDescription("Retrieve leads from a specific seat (account) with advanced filtering."),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
			mcp.WithNumber("limit", mcp.Description("Number of results to return (default 30).")),
			mcp.WithNumber("offset", mcp.Description("Pagination offset (default 0).")),
		}, tools.LeadFilterOptions()...)...,
	), t.handleGetLeadsFromSeat)

	s.AddTool(mcp.NewTool("get_tags_for_seat",
		mcp.WithDescription("Retrieve all tags from a specific seat (account)."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
	), t.handleGetTagsForSeat)

	s.AddTool(mcp.NewTool("create_tag",
		mcp.WithDescription("Create a new tag for a specific seat (account)."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("tag_name", mcp.Required(), mcp.Description("Name of the tag to create.")),
	), t.handleCreateTag)

	s.AddTool(mcp.NewTool("return_lead_to_campaign",
		mcp.WithDescription("Return a specific lead to a specific campaign, immediately or at a scheduled time."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The ID of the user.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("The ID of the account (seat).")),
		mcp.WithString("lead_id", mcp.Required(), mcp.Description("The ID of the lead to move.")),
		mcp.WithString("target_campaign_id", mcp.Required(), mcp.Description("The ID of the campaign to return the lead to.")),
		mcp.WithString("scheduled_time", mcp.Description("Optional ISO 8601 datetime to schedule the action.")),
	), t.handleReturnLeadToCampaign)

	addLeadEnrichmentPrompt(s)
}

func (t *Toolset) handleCreateLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := tools.GetRequiredString(req, "email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{"email": email}
	for arg, field := range map[string]string{
		"first_name": "first_name",
		"last_name":  "last_name",
		"company":    "company",
		"title":      "title",
		"phone":      "phone",
	} {
		if val, ok := tools.GetOptionalString(req, arg); ok {
			body[field] = val
		}
	}

	tags := []string{}
	if raw, ok := tools.GetOptionalString(req, "tags"); ok {
		tags = tools.ParseCommaList(raw)
	}
	body["tags"] = tags

	customFields, err := tools.ParseJSONObjectArg(req, "custom_fields")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if customFields == nil {
		customFields = map[string]any{}
	}
	body["custom_fields"] = customFields

	result, err := t.client.Execute(ctx, "POST", "/v1/leads", nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	result, err := t.client.Execute(ctx, "GET", fmt.Sprintf("/v1/leads/%s", leadID), nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleListLeads(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 100)))
	params.Set("offset", strconv.Itoa(tools.GetIntOrDefault(req, "offset", 0)))

	if raw, ok := tools.GetOptionalString(req, "tags"); ok {
		params.Set("tags", strings.Join(tools.ParseCommaList(raw), ","))
	}
	if company, ok := tools.GetOptionalString(req, "company"); ok {
		params.Set("company", company)
	}
	if after, ok := tools.GetOptionalString(req, "created_after"); ok {
		params.Set("created_after", after)
	}
	if before, ok := tools.GetOptionalString(req, "created_before"); ok {
		params.Set("created_before", before)
	}

	result, err := t.client.Execute(ctx, "GET", "/v1/leads", params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleUpdateLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{}
	for _, field := range []string{"email", "first_name", "last_name", "company", "title", "phone"} {
		if val, ok := tools.GetOptionalString(req, field); ok {
			body[field] = val
		}
	}
	if raw, ok := tools.GetOptionalString(req, "tags"); ok {
		body["tags"] = tools.ParseCommaList(raw)
	}
	customFields, err := tools.ParseJSONObjectArg(req, "custom_fields")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if customFields != nil {
		body["custom_fields"] = customFields
	}

	if len(body) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("at least one field must be provided to update")), nil
	}

	result, err := t.client.Execute(ctx, "PUT", fmt.Sprintf("/v1/leads/%s", leadID), nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleDeleteLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	result, err := t.client.Execute(ctx, "DELETE", fmt.Sprintf("/v1/leads/%s", leadID), nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleAddLeadsToCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaignID, err := tools.GetRequiredString(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	profileURL, hasProfile := tools.GetOptionalString(req, "profile_url")
	email, hasEmail := tools.GetOptionalString(req, "email")
	if !hasProfile && !hasEmail {
		return tools.ErrorResult(multilead.NewValidationError("either profile_url or email must be provided")), nil
	}

	body := map[string]any{}
	if hasProfile {
		body["profileUrl"] = profileURL
	}
	if hasEmail {
		body["email"] = email
	}

	customFields, err := tools.ParseJSONObjectArg(req, "custom_fields")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	for key, val := range customFields {
		body[key] = val
	}

	result, err := t.client.Execute(ctx, "POST", fmt.Sprintf("/campaign/%s/leads", campaignID), nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleUpdateLeadInCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaignID, err := tools.GetRequiredString(req, "campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	linkedinAccountID, err := tools.GetRequiredString(req, "linkedin_account_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	campaignNum, err := strconv.Atoi(campaignID)
	if err != nil {
		return tools.ErrorResult(multilead.NewValidationError("campaign_id must be numeric: %s", campaignID)), nil
	}
	accountNum, err := strconv.Atoi(linkedinAccountID)
	if err != nil {
		return tools.ErrorResult(multilead.NewValidationError("linkedin_account_id must be numeric: %s", linkedinAccountID)), nil
	}

	changedValues, err := tools.ParseJSONObjectArg(req, "changed_values")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if len(changedValues) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("changed_values must contain at least one field")), nil
	}

	body := map[string]any{
		"campaignId":        campaignNum,
		"linkedinAccountId": accountNum,
		"changedValues":     changedValues,
	}

	endpoint := fmt.Sprintf("/api/open-api/v2/campaigns/%s/leads/%s", campaignID, leadID)
	result, err := t.client.Execute(ctx, "PATCH", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetLeadsFromThread(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	threadID, err := tools.GetRequiredString(req, "thread_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/conversations/%s/belonged_leads", userID, accountID, threadID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetTagsForLeads(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	raw, err := tools.GetRequiredString(req, "lead_ids")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := url.Values{}
	params.Set("leadIds", tools.BracketedStrings(tools.ParseCommaList(raw)))

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/leads/tags", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleAssignTagToLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.leadTagAction(ctx, req, "POST")
}

func (t *Toolset) handleRemoveTagFromLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.leadTagAction(ctx, req, "DELETE")
}

func (t *Toolset) leadTagAction(ctx context.Context, req mcp.CallToolRequest, method string) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	tagID, err := tools.GetRequiredString(req, "tag_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/leads/%s/tags/%s", userID, accountID, leadID, tagID)
	result, err := t.client.Execute(ctx, method, endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetLinkedInUserInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	linkedinUserID, err := tools.GetRequiredString(req, "linkedin_user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/linkedin_users/%s", userID, accountID, linkedinUserID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handlePauseLeadExecution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.leadExecutionAction(ctx, req, "pause")
}

func (t *Toolset) handleResumeLeadExecution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.leadExecutionAction(ctx, req, "continue")
}

func (t *Toolset) leadExecutionAction(ctx context.Context, req mcp.CallToolRequest, action string) (*mcp.CallToolResult, error) {
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	result, err := t.client.Execute(ctx, "PATCH", fmt.Sprintf("/leads/%s/%s", leadID, action), nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetLeadsFromCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 30)))
	params.Set("offset", strconv.Itoa(tools.GetIntOrDefault(req, "offset", 0)))

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/campaigns/%s/leads", userID, accountID, campaignID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetLeadsFromSeat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params, err := tools.LeadFilterParams(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	params.Set("limit", strconv.Itoa(tools.GetIntOrDefault(req, "limit", 30)))
	params.Set("offset", strconv.Itoa(tools.GetIntOrDefault(req, "offset", 0)))

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/leads", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetTagsForSeat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/tags", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCreateTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	tagName, err := tools.GetRequiredString(req, "tag_name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/tags", userID, accountID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, map[string]any{"name": tagName})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleReturnLeadToCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	leadID, err := tools.GetRequiredString(req, "lead_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	targetCampaignID, err := tools.GetRequiredString(req, "target_campaign_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{"campaignId": targetCampaignID}
	if scheduled, ok := tools.GetOptionalString(req, "scheduled_time"); ok {
		body["scheduledTime"] = scheduled
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/leads/%s/change_campaign", userID, accountID, leadID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
