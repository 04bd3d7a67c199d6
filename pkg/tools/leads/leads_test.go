package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanman2024/multilead-mcp/pkg/config"
	"github.com/vanman2024/multilead-mcp/pkg/multilead"
)

// upstream records the last request so tests can assert on the wire format.
type upstream struct {
	srv      *httptest.Server
	calls    atomic.Int64
	method   string
	path     string
	rawQuery string
	body     map[string]any
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.method = r.Method
		u.path = r.URL.Path
		u.rawQuery = r.URL.RawQuery
		u.body = nil
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&u.body)
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) toolset() *Toolset {
	return &Toolset{client: multilead.New(&config.Config{
		APIKey:  "test-key",
		BaseURL: u.srv.URL,
		Timeout: 30,
	})}
}

func reqWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAddLeadsToCampaignRequiresContactField(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	res, err := ts.handleAddLeadsToCampaign(context.Background(), reqWith(map[string]any{
		"campaign_id": "123",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "profile_url or email")
	// Validation failures never reach the upstream.
	assert.Equal(t, int64(0), u.calls.Load())
}

func TestAddLeadsToCampaignMergesCustomFields(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	res, err := ts.handleAddLeadsToCampaign(context.Background(), reqWith(map[string]any{
		"campaign_id":   "123",
		"email":         "jane@example.com",
		"custom_fields": `{"first_name": "Jane", "company": "Acme"}`,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, "POST", u.method)
	assert.Equal(t, "/campaign/123/leads", u.path)
	// Custom fields merge into the top level of the payload.
	assert.Equal(t, "jane@example.com", u.body["email"])
	assert.Equal(t, "Jane", u.body["first_name"])
	assert.Equal(t, "Acme", u.body["company"])
}

func TestUpdateLeadRequiresAtLeastOneField(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	res, err := ts.handleUpdateLead(context.Background(), reqWith(map[string]any{
		"lead_id": "42",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, int64(0), u.calls.Load())
}

func TestUpdateLeadInCampaign(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	res, err := ts.handleUpdateLeadInCampaign(context.Background(), reqWith(map[string]any{
		"campaign_id":         "55",
		"lead_id":             "42",
		"linkedin_account_id": "9852",
		"changed_values":      `{"businessEmail": "new@example.com"}`,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, "PATCH", u.method)
	assert.Equal(t, "/api/open-api/v2/campaigns/55/leads/42", u.path)
	// IDs travel as JSON numbers in the body.
	assert.Equal(t, float64(55), u.body["campaignId"])
	assert.Equal(t, float64(9852), u.body["linkedinAccountId"])
	changed, ok := u.body["changedValues"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", changed["businessEmail"])
}

func TestUpdateLeadInCampaignRejectsNonNumericIDs(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	res, err := ts.handleUpdateLeadInCampaign(context.Background(), reqWith(map[string]any{
		"campaign_id":         "abc",
		"lead_id":             "42",
		"linkedin_account_id": "9852",
		"changed_values":      `{"x": "y"}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, int64(0), u.calls.Load())
}

func TestLeadExecutionActions(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	_, err := ts.handlePauseLeadExecution(context.Background(), reqWith(map[string]any{"lead_id": "7"}))
	require.NoError(t, err)
	assert.Equal(t, "PATCH", u.method)
	assert.Equal(t, "/leads/7/pause", u.path)

	_, err = ts.handleResumeLeadExecution(context.Background(), reqWith(map[string]any{"lead_id": "7"}))
	require.NoError(t, err)
	assert.Equal(t, "/leads/7/continue", u.path)
}

func TestGetLeadsFromCampaignFilters(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	res, err := ts.handleGetLeadsFromCampaign(context.Background(), reqWith(map[string]any{
		"user_id":                   "16911",
		"account_id":                "9852",
		"campaign_id":               "55",
		"filter_by_status":          "1,4",
		"filter_by_verified_emails": true,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, "/users/16911/accounts/9852/campaigns/55/leads", u.path)
	query := u.rawQuery
	// List filters use the bracketed form and booleans are lowercase strings.
	assert.Contains(t, query, "filterByStatus=%5B1%2C4%5D")
	assert.Contains(t, query, "filterByVerifiedEmails=true")
	assert.Contains(t, query, "limit=30")
	assert.Contains(t, query, "offset=0")
}

func TestGetTagsForLeadsEncoding(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()

	_, err := ts.handleGetTagsForLeads(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
		"lead_ids":   "101, 102",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/users/16911/accounts/9852/leads/tags", u.path)
	assert.Contains(t, u.rawQuery, "leadIds=%5B101%2C102%5D")
}

func TestTagActions(t *testing.T) {
	u := newUpstream(t)
	ts := u.toolset()
	args := map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
		"lead_id":    "42",
		"tag_id":     "3",
	}

	_, err := ts.handleAssignTagToLead(context.Background(), reqWith(args))
	require.NoError(t, err)
	assert.Equal(t, "POST", u.method)
	assert.Equal(t, "/users/16911/accounts/9852/leads/42/tags/3", u.path)

	_, err = ts.handleRemoveTagFromLead(context.Background(), reqWith(args))
	require.NoError(t, err)
	assert.Equal(t, "DELETE", u.method)
	assert.Equal(t, "/users/16911/accounts/9852/leads/42/tags/3", u.path)
}

func TestUpstreamErrorSurfacesKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	ts := &Toolset{client: multilead.New(&config.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 30,
	})}

	res, err := ts.handleGetLead(context.Background(), reqWith(map[string]any{"lead_id": "999"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "not_found")
	assert.Contains(t, text, "999")
}
