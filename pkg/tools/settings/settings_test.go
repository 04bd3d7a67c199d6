package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanman2024/multilead-mcp/pkg/config"
	"github.com/vanman2024/multilead-mcp/pkg/multilead"
)

func TestIdentityTypeLookupPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"1": "LinkedIn", "2": "Email"}`))
	}))
	defer srv.Close()

	ts := &Toolset{client: multilead.New(&config.Config{
		APIKey: "k", BaseURL: srv.URL, Timeout: 30,
	})}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"ids": " 1, 2 "}

	res, err := ts.handleIdentityTypes(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	// IDs are normalized into the path, not the query string.
	assert.Equal(t, "/identityType/ids/1,2", gotPath)
}
