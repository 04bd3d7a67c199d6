package statistics

import (
	"context"
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

func reqWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func newToolset(t *testing.T, capture *url.URL) *Toolset {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*capture = *r.URL
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(srv.Close)
	return &Toolset{client: multilead.New(&config.Config{
		APIKey: "k", BaseURL: srv.URL, Timeout: 30,
	})}
}

func TestGetStatisticsQueryShape(t *testing.T) {
	var got url.URL
	ts := newToolset(t, &got)

	res, err := ts.handleGetStatistics(context.Background(), reqWith(map[string]any{
		"user_id":        "16911",
		"account_id":     "9852",
		"from_timestamp": float64(1700000000),
		"to_timestamp":   float64(1700604800),
		"curves":         "1,5,9",
		"time_zone":      "Europe/Berlin",
		"campaign_id":    float64(55),
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, "/users/16911/accounts/9852/statistics", got.Path)
	query := got.Query()
	assert.Equal(t, "1700000000", query.Get("from"))
	assert.Equal(t, "1700604800", query.Get("to"))
	assert.Equal(t, "Europe/Berlin", query.Get("timeZone"))
	assert.Equal(t, "55", query.Get("campaignId"))
	// Each curve travels as its own repeated query key.
	assert.Equal(t, []string{"1", "5", "9"}, query["curves"])
}

func TestGetStatisticsOmitsCampaignWhenAbsent(t *testing.T) {
	var got url.URL
	ts := newToolset(t, &got)

	_, err := ts.handleGetStatistics(context.Background(), reqWith(map[string]any{
		"user_id":        "16911",
		"account_id":     "9852",
		"from_timestamp": float64(1700000000),
		"to_timestamp":   float64(1700604800),
		"curves":         "1",
		"time_zone":      "UTC",
	}))
	require.NoError(t, err)
	_, present := got.Query()["campaignId"]
	assert.False(t, present)
}

func TestExportStatisticsCSVEndpoint(t *testing.T) {
	var got url.URL
	ts := newToolset(t, &got)

	res, err := ts.handleExportStatisticsCSV(context.Background(), reqWith(map[string]any{
		"user_id":        "16911",
		"account_id":     "9852",
		"from_timestamp": float64(1700000000),
		"to_timestamp":   float64(1700604800),
		"curves":         "2,3",
		"time_zone":      "UTC",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "/users/16911/accounts/9852/statistics/export_csv", got.Path)
}

func TestTimeRangeParamsValidation(t *testing.T) {
	var got url.URL
	ts := newToolset(t, &got)

	res, err := ts.handleGetStatistics(context.Background(), reqWith(map[string]any{
		"user_id":        "16911",
		"account_id":     "9852",
		"from_timestamp": float64(1700000000),
		"to_timestamp":   float64(1700604800),
		"curves":         "1,oops",
		"time_zone":      "UTC",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	// Nothing was sent upstream.
	assert.Empty(t, got.Path)
}

func TestAllCampaignsStatisticsDefaultsState(t *testing.T) {
	var got url.URL
	ts := newToolset(t, &got)

	_, err := ts.handleGetAllCampaignsStatistics(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/users/16911/accounts/9852/all_campaigns_statistics", got.Path)
	assert.Equal(t, "1", got.Query().Get("campaignState"))
}
