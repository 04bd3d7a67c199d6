package users

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

func TestCreateSeatBody(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	res, err := ts.handleCreateSeat(context.Background(), reqWith(map[string]any{
		"user_id":        "16911",
		"plan_id":        "3",
		"full_name":      "Jane Doe",
		"start_utc_time": "09:00",
		"end_utc_time":   "17:00",
		"time_zone":      "Europe/Berlin",
		"team_id":        "8",
		"whitelabel_id":  "2",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Equal(t, "POST", c.method)
	assert.Equal(t, "/users/16911/accounts/register", c.url.Path)
	// Numeric fields travel as JSON numbers even when supplied as strings.
	assert.Equal(t, float64(3), c.body["planId"])
	assert.Equal(t, float64(8), c.body["teamId"])
	assert.Equal(t, float64(2), c.body["whitelabelId"])
	assert.Equal(t, "09:00", c.body["startUTCTime"])
	assert.Equal(t, "17:00", c.body["endUTCTime"])
}

func TestSuspendSeatRequiresFlag(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	res, err := ts.handleSuspendSeat(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, int64(0), c.calls.Load())
}

func TestSuspendSeatBody(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleSuspendSeat(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
		"suspended":  true,
	}))
	require.NoError(t, err)

	assert.Equal(t, "PUT", c.method)
	assert.Equal(t, "/users/16911/accounts/suspend", c.url.Path)
	assert.Equal(t, float64(9852), c.body["accountId"])
	assert.Equal(t, true, c.body["suspended"])
}

func TestTransferCreditsUsesV2Path(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleTransferCredits(context.Background(), reqWith(map[string]any{
		"user_id":             "16911",
		"destination_user_id": "17000",
		"quantity":            "250",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/api/open-api/v2/users/16911/transfer_credits", c.url.Path)
	assert.Equal(t, float64(17000), c.body["destinationUserId"])
	assert.Equal(t, float64(250), c.body["quantity"])
}

func TestRegisterUserOmitsAbsentOptionals(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleRegisterUser(context.Background(), reqWith(map[string]any{
		"email":         "new@example.com",
		"password":      "hunter2!",
		"full_name":     "New User",
		"whitelabel_id": "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/users/register", c.url.Path)
	_, hasPhone := c.body["phone"]
	assert.False(t, hasPhone)
	_, hasInvitation := c.body["invitationId"]
	assert.False(t, hasInvitation)
	_, hasSkip := c.body["skipConfirmationEmail"]
	assert.False(t, hasSkip)
}

func TestReactivateSeatOptionalProxy(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleReactivateSeat(context.Background(), reqWith(map[string]any{
		"user_id":       "16911",
		"account_id":    "9852",
		"proxy_country": "DE",
	}))
	require.NoError(t, err)

	assert.Equal(t, "PUT", c.method)
	assert.Equal(t, "/users/16911/accounts/9852/reactivate", c.url.Path)
	assert.Equal(t, "DE", c.body["proxyCountry"])
}

func TestDisconnectLinkedInUsesPatch(t *testing.T) {
	var c capture
	ts := newToolset(t, &c)

	_, err := ts.handleDisconnectLinkedIn(context.Background(), reqWith(map[string]any{
		"user_id":    "16911",
		"account_id": "9852",
	}))
	require.NoError(t, err)
	assert.Equal(t, "PATCH", c.method)
	assert.Equal(t, "/users/16911/accounts/9852/disconnect_linkedin", c.url.Path)
}
