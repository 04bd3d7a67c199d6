// Package teams exposes the Multilead team and role management endpoints as
// MCP tools.
package teams

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools"
)

// Toolset carries the shared gateway client into every team handler.
type Toolset struct {
	client *multilead.Client
}

// Register wires the team management tools onto the server.
func Register(s *server.MCPServer, client *multilead.Client) {
	t := &Toolset{client: client}

	s.AddTool(mcp.NewTool("create_team",
		mcp.WithDescription("Create a new team for a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID that will own the team.")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the new team.")),
	), t.handleCreateTeam)

	s.AddTool(mcp.NewTool("create_team_role",
		mcp.WithDescription("Create a new role within a team."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID performing the action.")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the new role.")),
		mcp.WithString("permissions", mcp.Required(), mcp.Description(`Permissions as a JSON array of objects, e.g. [{"id": 1, "isViewOnly": false}].`)),
	), t.handleCreateRole)

	s.AddTool(mcp.NewTool("get_team_roles",
		mcp.WithDescription("List the roles defined in a team."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID performing the action.")),
	), t.handleGetRoles)

	s.AddTool(mcp.NewTool("get_team_members",
		mcp.WithDescription("List the members of a team."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID performing the action.")),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
	), t.handleGetMembers)

	s.AddTool(mcp.NewTool("invite_team_member",
		mcp.WithDescription("Invite a new member to a team."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID performing the action.")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the invitee.")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the invitee.")),
		mcp.WithString("account_roles", mcp.Required(), mcp.Description(`Account roles as a JSON array, e.g. [{"accountId": 1, "roleId": 2}].`)),
		mcp.WithBoolean("can_manage_payment", mcp.Description("Whether the member may manage payment. Defaults to false.")),
		mcp.WithBoolean("send_an_invitation_email", mcp.Description("Whether to send an invitation email. Defaults to false.")),
	), t.handleInviteMember)

	s.AddTool(mcp.NewTool("update_team_member",
		mcp.WithDescription("Update an existing team member."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team ID.")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID performing the action.")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the member to update.")),
		mcp.WithString("account_roles", mcp.Description(`Replacement account roles as a JSON array.`)),
		mcp.WithBoolean("can_manage_team_global_webhooks", mcp.Description("Whether the member may manage the team's global webhooks.")),
	), t.handleUpdateMember)
}

// teamScope extracts the team/user ID pair the team endpoints are scoped by.
func teamScope(req mcp.CallToolRequest) (teamID, userID string, err error) {
	if teamID, err = tools.GetRequiredString(req, "team_id"); err != nil {
		return "", "", err
	}
	if userID, err = tools.GetRequiredString(req, "user_id"); err != nil {
		return "", "", err
	}
	return teamID, userID, nil
}

func (t *Toolset) handleCreateTeam(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := tools.GetRequiredString(req, "user_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	name, err := tools.GetRequiredString(req, "name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/create_team", userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, map[string]any{"name": name})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleCreateRole(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, userID, err := teamScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	name, err := tools.GetRequiredString(req, "name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	permissions, err := tools.ParseJSONArrayArg(req, "permissions")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if len(permissions) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("permissions must contain at least one entry")), nil
	}

	body := map[string]any{
		"name":        name,
		"permissions": permissions,
	}

	endpoint := fmt.Sprintf("/teams/%s/users/%s/create_role", teamID, userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, userID, err := teamScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/teams/%s/users/%s/get_roles", teamID, userID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleGetMembers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, userID, err := teamScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	endpoint := fmt.Sprintf("/users/%s/teams/%s/get_team_members", userID, teamID)
	result, err := t.client.Execute(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleInviteMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, userID, err := teamScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	name, err := tools.GetRequiredString(req, "name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	email, err := tools.GetRequiredString(req, "email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	accountRoles, err := tools.ParseJSONArrayArg(req, "account_roles")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if len(accountRoles) == 0 {
		return tools.ErrorResult(multilead.NewValidationError("account_roles must contain at least one entry")), nil
	}

	canManagePayment, _ := tools.GetOptionalBool(req, "can_manage_payment")
	sendInvitation, _ := tools.GetOptionalBool(req, "send_an_invitation_email")

	body := map[string]any{
		"name":                  name,
		"email":                 email,
		"accountRoles":          accountRoles,
		"canManagePayment":      canManagePayment,
		"sendAnInvitationEmail": sendInvitation,
	}

	endpoint := fmt.Sprintf("/teams/%s/users/%s/invite_team_member", teamID, userID)
	result, err := t.client.Execute(ctx, "POST", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func (t *Toolset) handleUpdateMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, userID, err := teamScope(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	email, err := tools.GetRequiredString(req, "email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	body := map[string]any{"email": email}
	accountRoles, err := tools.ParseJSONArrayArg(req, "account_roles")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if accountRoles != nil {
		body["accountRoles"] = accountRoles
	}
	if canManage, ok := tools.GetOptionalBool(req, "can_manage_team_global_webhooks"); ok {
		body["canManageTeamGlobalWebhooks"] = canManage
	}

	endpoint := fmt.Sprintf("/teams/%s/users/%s/update_team_member", teamID, userID)
	result, err := t.client.Execute(ctx, "PATCH", endpoint, nil, body)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}
