package campaigns

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanman2024/multilead-mcp/pkg/config"
	"github.com/vanman2024/multilead-mcp/pkg/multilead"
)

type capture struct {
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

func TestExportAllCampaignsUsesPost(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	res, err := ts.handleExportAllCampaigns(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/users/16911/accounts/9852/campaigns/export", c.url.Path)
}

func TestExportLeadsFromCampaignForwardsFilters(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleExportLeadsFromCampaign(context.Background(), reqWith(map[string]any{
		"user_id":          "16911",
		"account_id":       "9852",
		"campaign_id":      "55",
		"filter_by_status": "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, "GET", c.method)
	assert.Equal(t, "/users/16911/accounts/9852/campaigns/55/export", c.url.Path)
	assert.Equal(t, "[4]", c.url.Query().Get("filterByStatus"))
	// Exports are not paginated.
	_, hasLimit := c.url.Query()["limit"]
	assert.False(t, hasLimit)
}

func TestGetCampaignListDefaults(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleGetCampaignList(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
	}))
	require.NoError(t, err)

	query := c.url.Query()
	assert.Equal(t, "30", query.Get("limit"))
	assert.Equal(t, "0", query.Get("offset"))
	assert.Equal(t, "1", query.Get("campaignState"))
	_, hasSort := query["sortOrder"]
	assert.False(t, hasSort)
}

func TestCreateLeadSourceBodyShape(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	res, err := ts.handleCreateLeadSource(context.Background(), reqWith(map[string]any{
		"user_id":          "16911",
		"account_id":       "9852",
		"campaign_id":      float64(55),
		"lead_source_url":  "https://www.linkedin.com/search/results/people/?keywords=founder",
		"lead_source_type": "basic_search",
		"auto_reuse":       float64(1),
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	sources, ok := c.body["leadSources"].([]any)
	require.True(t, ok)
	require.Len(t, sources, 1)
	source := sources[0].(map[string]any)
	assert.Equal(t, float64(55), source["campaignId"])
	assert.Equal(t, "basic_search", source["leadSourceType"])
	assert.Equal(t, float64(1), source["autoReuse"])
	_, hasInterval := source["autoReuseInterval"]
	assert.False(t, hasInterval)
}

func TestCreateCampaignFromTemplate(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleCreateCampaignFromTemplate(context.Background(), reqWith(map[string]any{
		"user_id":              "16911",
		"account_id":           "9852",
		"sequence_template_id": "tmpl-9",
		"campaign_name":        "Q4 Outreach",
	}))
	require.NoError(t, err)

	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/users/16911/accounts/9852/campaigns", c.url.Path)
	assert.Equal(t, "tmpl-9", c.body["sequenceTemplateId"])
	assert.Equal(t, "Q4 Outreach", c.body["name"])
	_, hasSource := c.body["leadSourceUrl"]
	assert.False(t, hasSource)
}
