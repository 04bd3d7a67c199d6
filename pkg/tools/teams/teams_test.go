package teams

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanman2024/multilead-mcp/pkg/config"
	"github.com/vanman2024/multilead-mcp/pkg/multilead"
)

type capture struct {
	calls  atomic.Int64
	method string
	url    url.URL
	body   map[string]any
}

func reqWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func newToolset(t *testing.T, c *capture) *Toolset {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.calls.Add(1)
		c.method = r.Method
		c.url = *r.URL
		c.body = nil
		json.NewDecoder(r.Body).Decode(&c.body)
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(srv.Close)
	return &Toolset{client: multilead.New(&config.Config{
		APIKey: "k", BaseURL: srv.URL, Timeout: 30,
	})}
}

func TestCreateTeamRole(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	res, err := ts.handleCreateRole(context.Background(), reqWith(map[string]any{
		"team_id":     "8",
		"user_id":     "16911",
		"name":        "Reviewer",
		"permissions": `[{"id": 1, "isViewOnly": true}]`,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/teams/8/users/16911/create_role", c.url.Path)
	perms, ok := c.body["permissions"].([]any)
	require.True(t, ok)
	require.Len(t, perms, 1)
}

func TestCreateTeamRoleRequiresPermissions(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	res, err := ts.handleCreateRole(context.Background(), reqWith(map[string]any{
		"team_id": "8",
		"user_id": "16911",
		"name":    "Reviewer",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, int64(0), c.calls.Load())
}

func TestInviteMemberDefaultsFlagsToFalse(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleInviteMember(context.Background(), reqWith(map[string]any{
		"team_id":       "8",
		"user_id":       "16911",
		"name":          "Jane Doe",
		"email":         "jane@example.com",
		"account_roles": `[{"accountId": 9852, "roleId": 2}]`,
	}))
	require.NoError(t, err)

	assert.Equal(t, "/teams/8/users/16911/invite_team_member", c.url.Path)
	assert.Equal(t, false, c.body["canManagePayment"])
	assert.Equal(t, false, c.body["sendAnInvitationEmail"])
}

func TestUpdateMemberOmitsAbsentFields(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleUpdateMember(context.Background(), reqWith(map[string]any{
		"team_id": "8",
		"user_id": "16911",
		"email":   "jane@example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "PATCH", c.method)
	assert.Equal(t, "/teams/8/users/16911/update_team_member", c.url.Path)
	_, hasRoles := c.body["accountRoles"]
	assert.False(t, hasRoles)
	_, hasFlag := c.body["canManageTeamGlobalWebhooks"]
	assert.False(t, hasFlag)
}

func TestGetTeamMembersPathOrder(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleGetMembers(context.Background(), reqWith(map[string]any{
		"team_id": "8",
		"user_id": "16911",
	}))
	require.NoError(t, err)
	// Unlike the other team endpoints, this one nests team under user.
	assert.Equal(t, "/users/16911/teams/8/get_team_members", c.url.Path)
}
