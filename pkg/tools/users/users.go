// Package users exposes the Multilead user, seat, and account management
// endpoints as MCP tools.
package users

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools"
)

// Toolset carries the shared gateway client into every user handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the user and seat management tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("list_all_seats_of_a_specific_user",
		mcp.WithDescription("List all seats (LinkedIn accounts) that belong to the authenticated user."),
		mcp.WithString("search", mcp.Description("Optional search string to filter seats.")),
	), t.handleListSeats)

	s.AddTool(mcp.NewTool("register_new_user",
		mcp.WithDescription("Register a new user under the white label."),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the new user.")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Password for the new user.")),
		mcp.WithString("full_name", mcp.Required(), mcp.Description("Full name of the new user.")),
		mcp.WithString("whitelabel_id", mcp.Required(), mcp.Description("White label ID the user belongs to.")),
		mcp.WithString("phone", mcp.Description("Optional phone number.")),
		mcp.WithString("invitation_id", mcp.Description("Optional invitation ID.")),
		mcp.WithBoolean("skip_confirmation_email", mcp.Description("Skip sending the confirmation email.")),
	), t.handleRegisterUser)

	s.AddTool(mcp.NewTool("get_user_information",
		mcp.WithDescription("Get information about the authenticated user."),
	), t.handleGetUserInfo)

	s.AddTool(mcp.NewTool("list_all_users_as_a_whitelabel",
		mcp.WithDescription("List all users under the white label."),
		mcp.WithString("limit", mcp.Description("Maximum number of users to return.")),
		mcp.WithString("offset", mcp.Description("Number of users to skip.")),
	), t.handleListUsers)

	s.AddTool(mcp.NewTool("create_seat",
		mcp.WithDescription("Create a new seat (LinkedIn account slot) for a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("plan_id", mcp.Required(), mcp.Description("Subscription plan ID.")),
		mcp.WithString("full_name", mcp.Required(), mcp.Description("Full name shown on the seat.")),
		mcp.WithString("start_utc_time", mcp.Required(), mcp.Description("Daily activity start time in UTC, e.g. 09:00.")),
		mcp.WithString("end_utc_time", mcp.Required(), mcp.Description("Daily activity end time in UTC, e.g. 17:00.")),
		mcp.WithString("time_zone", mcp.Required(), mcp.Description("IANA time zone of the seat, e.g. Europe/Berlin.")),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID the seat belongs to.")),
		mcp.WithString("whitelabel_id", mcp.Required(), mcp.Description("White label ID.")),
	), t.handleCreateSeat)

	s.AddTool(mcp.NewTool("cancel_seat",
		mcp.WithDescription("Cancel a seat's subscription."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID) to cancel.")),
		mcp.WithString("reason", mcp.Required(), mcp.Description("Cancellation reason.")),
	), t.handleCancelSeat)

	s.AddTool(mcp.NewTool("reactivate_seat",
		mcp.WithDescription("Reactivate a previously cancelled seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID) to reactivate.")),
		mcp.WithString("proxy_country", mcp.Description("Optional proxy country code for the reactivated seat.")),
	), t.handleReactivateSeat)

	s.AddTool(mcp.NewTool("suspend_or_unsuspend_seat",
		mcp.WithDescription("Suspend or unsuspend a seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithBoolean("suspended", mcp.Required(), mcp.Description("true to suspend, false to unsuspend.")),
	), t.handleSuspendSeat)

	s.AddTool(mcp.NewTool("resend_email_confirmation_message",
		mcp.WithDescription("Resend the email confirmation message to a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address to resend confirmation to.")),
	), t.handleResendConfirmation)

	s.AddTool(mcp.NewTool("send_password_reset_email",
		mcp.WithDescription("Send a password reset email to a user."),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the user.")),
	), t.handlePasswordReset)

	s.AddTool(mcp.NewTool("list_users_associated_with_a_specific_seat",
		mcp.WithDescription("List all users associated with a specific seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("limit", mcp.Description("Maximum number of users to return.")),
		mcp.WithString("offset", mcp.Description("Number of users to skip.")),
		mcp.WithString("search", mcp.Description("Optional search string.")),
	), t.handleListSeatUsers)

	s.AddTool(mcp.NewTool("list_teams_under_the_users_white_label",
		mcp.WithDescription("List all teams under the user's white label."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
	), t.handleListTeams)

	s.AddTool(mcp.NewTool("change_a_password",
		mcp.WithDescription("Change a user's password."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("new_password", mcp.Required(), mcp.Description("New password for the user.")),
	), t.handleChangePassword)

	s.AddTool(mcp.NewTool("get_users_sequence_templates",
		mcp.WithDescription("Get the saved sequence templates for a user's team."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
	), t.handleSequenceTemplates)

	s.AddTool(mcp.NewTool("transfer_credits",
		mcp.WithDescription("Transfer email discovery credits from one user to another."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Source user ID.")),
		mcp.WithString("destination_user_id", mcp.Required(), mcp.Description("Destination user ID.")),
		mcp.WithString("quantity", mcp.Required(), mcp.Description("Number of credits to transfer.")),
	), t.handleTransferCredits)

	s.AddTool(mcp.NewTool("connect_linkedin_account",
		mcp.WithDescription("Connect a LinkedIn account to a seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
		mcp.WithString("linkedin_email", mcp.Required(), mcp.Description("LinkedIn login email.")),
		mcp.WithString("linkedin_password", mcp.Required(), mcp.Description("LinkedIn login password.")),
		mcp.WithString("linkedin_subscription_id", mcp.Required(), mcp.Description("LinkedIn subscription ID.")),
		mcp.WithString("country_code", mcp.Required(), mcp.Description("Two-letter country code for the proxy.")),
		mcp.WithString("setup_proxy_type", mcp.Required(), mcp.Description("Proxy setup type.")),
		mcp.WithString("note", mcp.Description("Optional note for the connection.")),
	), t.handleConnectLinkedIn)

	s.AddTool(mcp.NewTool("disconnect_linkedin_account",
		mcp.WithDescription("Disconnect the LinkedIn account from a seat."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that owns the seat.")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Account ID (seat ID).")),
	), t.handleDisconnectLinkedIn)

	s.AddTool(mcp.NewTool("activate_inboxflare_warmup",
		mcp.WithDescription("Activate InboxFlare email warmup for a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID.")),
	), t.handleActivateWarmup)
}

func (t *Toolset) handleListSeats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := url.Values{}
	if search, ok := tools.GetOptionalString(req, "search"); ok {
		params.Set("search", search)
	}

	result, err := t.client.Execute(ctx, "GET", "/accounts", params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleRegisterUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := tools.GetRequiredString(req, "email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	password, err := tools.GetRequiredString(req, "password")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	fullName, err := tools.GetRequiredString(req, "full_name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	whitelabelID, err := tools.GetRequiredInt(req, "whitelabel_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"email":        email,
		"password":     password,
		"fullName":     fullName,
		"whitelabelId": whitelabelID,
	}
	if phone, ok := tools.GetOptionalString(req, "phone"); ok {
		body["phone"] = phone
	}
	if invitationID, ok := tools.GetOptionalString(req, "invitation_id"); ok {
		body["invitationId"] = invitationID
	}
	if skip, ok := tools.GetOptionalBool(req, "skip_confirmation_email"); ok {
		body["skipConfirmationEmail"] = skip
	}

	result, err := t.client.Execute(ctx, "POST", "/users/register", nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetUserInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := t.client.Execute(ctx, "GET", "/user/me", nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleListUsers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := url.Values{}
	if limit, ok := tools.GetOptionalInt(req, "limit"); ok {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset, ok := tools.GetOptionalInt(req, "offset"); ok {
		params.Set("offset", fmt.Sprintf("%d", offset))
	}

	result, err := t.client.Execute(ctx, "GET", "/users", params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCreateSeat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	planID, err := tools.GetRequiredInt(req, "plan_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	fullName, err := tools.GetRequiredString(req, "full_name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	startUTC, err := tools.GetRequiredString(req, "start_utc_time")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	endUTC, err := tools.GetRequiredString(req, "end_utc_time")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	timeZone, err := tools.GetRequiredString(req, "time_zone")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	teamID, err := tools.GetRequiredInt(req, "team_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	whitelabelID, err := tools.GetRequiredInt(req, "whitelabel_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"planId":       planID,
		"fullName":     fullName,
		"startUTCTime": startUTC,
		"endUTCTime":   endUTC,
		"timeZone":     timeZone,
		"teamId":       teamID,
		"whitelabelId": whitelabelID,
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/register", userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCancelSeat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	reason, err := tools.GetRequiredString(req, "reason")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/subscriptions/accounts/%s", userID, accountID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, map[string]any{"reason": reason})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleReactivateSeat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{}
	if proxyCountry, ok := tools.GetOptionalString(req, "proxy_country"); ok {
		body["proxyCountry"] = proxyCountry
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/reactivate", userID, accountID)
	result, err := t.client.Execute(ctx, "PUT", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleSuspendSeat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	accountID, err := tools.GetRequiredInt(req, "account_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	suspended, ok := tools.GetOptionalBool(req, "suspended")
	if !ok {
		return tools.ErrorResult(multilead.NewValidationError("suspended is required")), nil
	}

	body := map[string]any{
		"accountId": accountID,
		"suspended": suspended,
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/suspend", userID)
	result, err := t.client.Execute(ctx, "PUT", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleResendConfirmation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	email, err := tools.GetRequiredString(req, "email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/resend_confirmation", userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, map[string]any{"email": email})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handlePasswordReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := tools.GetRequiredString(req, "email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	result, err := t.client.Execute(ctx, "POST", "/users/reset_password_email", nil, map[string]any{"email": email})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleListSeatUsers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	params := url.Values{}
	if limit, ok := tools.GetOptionalInt(req, "limit"); ok {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset, ok := tools.GetOptionalInt(req, "offset"); ok {
		params.Set("offset", fmt.Sprintf("%d", offset))
	}
	if search, ok := tools.GetOptionalString(req, "search"); ok {
		params.Set("search", search)
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/get_associated_users", userID, accountID)
	result, err := t.client.Execute(ctx, "GET", endpoint, params, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleListTeams(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/teams", userID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleChangePassword(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	newPassword, err := tools.GetRequiredString(req, "new_password")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/change_password", userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, map[string]any{"newPassword": newPassword})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleSequenceTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	teamID, err := tools.GetRequiredString(req, "team_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/teams/%s/saved_sequences", userID, teamID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleTransferCredits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	destinationID, err := tools.GetRequiredInt(req, "destination_user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	quantity, err := tools.GetRequiredInt(req, "quantity")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"destinationUserId": destinationID,
		"quantity":          quantity,
	}

	endpoint := fmt.Sprintf("/api/open-api/v2/users/%s/transfer_credits", userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleConnectLinkedIn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	linkedinEmail, err := tools.GetRequiredString(req, "linkedin_email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	linkedinPassword, err := tools.GetRequiredString(req, "linkedin_password")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	subscriptionID, err := tools.GetRequiredInt(req, "linkedin_subscription_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	countryCode, err := tools.GetRequiredString(req, "country_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	setupProxyType, err := tools.GetRequiredString(req, "setup_proxy_type")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{
		"linkedinEmail":          linkedinEmail,
		"linkedinPassword":       linkedinPassword,
		"linkedinSubscriptionId": subscriptionID,
		"countryCode":            countryCode,
		"setupProxyType":         setupProxyType,
	}
	if note, ok := tools.GetOptionalString(req, "note"); ok {
		body["note"] = note
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/connect_linkedin", userID, accountID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleDisconnectLinkedIn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, accountID, err := tools.SeatScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/accounts/%s/disconnect_linkedin", userID, accountID)
	result, err := t.client.Execute(ctx, "PATCH", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleActivateWarmup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/activate_warmup_inboxflare", userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
