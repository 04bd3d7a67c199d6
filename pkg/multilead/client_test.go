package multilead

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanman2024/multilead-mcp/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return New(&config.Config{
		APIKey:  "test-api-key",
		BaseURL: baseURL,
		Timeout: 30,
	})
}

func TestExecuteHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Execute(context.Background(), "GET", "/leads/42", nil, nil)
	require.NoError(t, err)

	// The key goes in the Authorization header as-is, with no Bearer prefix.
	assert.Equal(t, "test-api-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "application/json", gotAccept)
}

func TestExecuteStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, KindAuthentication},
		{"forbidden", http.StatusForbidden, KindPermission},
		{"not found", http.StatusNotFound, KindNotFound},
		{"rate limited", http.StatusTooManyRequests, KindRateLimited},
		{"internal error", http.StatusInternalServerError, KindServer},
		{"bad gateway", http.StatusBadGateway, KindServer},
		{"unavailable", http.StatusServiceUnavailable, KindServer},
		{"teapot", http.StatusTeapot, KindUpstream},
		{"bad request", http.StatusBadRequest, KindUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				// Deliberately not JSON: the status must decide the
				// outcome before the body is ever parsed.
				fmt.Fprint(w, "<html>upstream noise</html>")
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			_, err := client.Execute(context.Background(), "GET", "/leads", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestExecuteNotFoundNamesEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Execute(context.Background(), "GET", "/leads/999", nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "/leads/999")
}

func TestExecuteServerErrorNamesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Execute(context.Background(), "GET", "/campaigns", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestExecuteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Execute(context.Background(), "DELETE", "/webhooks/7", nil, nil)
	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Operation completed successfully", payload["message"])
}

func TestExecuteReturnsBodyVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [{"id": 1}, {"id": 2}], "total": 2}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Execute(context.Background(), "GET", "/leads", nil, nil)
	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), payload["total"])
	items, ok := payload["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestExecuteSlashJoin(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	// Trailing slash on the base and a leading slash on the endpoint must
	// still produce exactly one separator.
	client := newTestClient(srv.URL + "/")
	_, err := client.Execute(context.Background(), "GET", "/leads", nil, nil)
	require.NoError(t, err)
	_, err = client.Execute(context.Background(), "GET", "leads", nil, nil)
	require.NoError(t, err)

	require.Len(t, gotPaths, 2)
	assert.Equal(t, "/leads", gotPaths[0])
	assert.Equal(t, "/leads", gotPaths[1])
}

func TestExecuteRejectsUnknownMethod(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Execute(context.Background(), "TRACE", "/leads", nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.False(t, called)
}

func TestExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Execute(ctx, "GET", "/statistics", nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestExecuteNetworkError(t *testing.T) {
	// Nothing listens here.
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.Execute(context.Background(), "GET", "/leads", nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestExecuteMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Execute(context.Background(), "GET", "/leads", nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindUnexpected, KindOf(err))
}

func TestExecuteConcurrent(t *testing.T) {
	// Each request echoes its own body back; concurrent calls must never
	// observe each other's payloads.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	const workers = 50
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := map[string]any{"worker": fmt.Sprintf("w-%d", i)}
			result, err := client.Execute(context.Background(), "POST", "/echo", nil, body)
			if err != nil {
				errs[i] = err
				return
			}
			payload, ok := result.(map[string]any)
			if !ok || payload["worker"] != fmt.Sprintf("w-%d", i) {
				errs[i] = fmt.Errorf("worker %d got foreign payload: %v", i, result)
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	Convey("Given the gateway error taxonomy", t, func() {
		Convey("Every kind renders a stable label", func() {
			So(KindAuthentication.String(), ShouldEqual, "authentication_error")
			So(KindPermission.String(), ShouldEqual, "permission_denied")
			So(KindNotFound.String(), ShouldEqual, "not_found")
			So(KindRateLimited.String(), ShouldEqual, "rate_limited")
			So(KindServer.String(), ShouldEqual, "upstream_server_error")
			So(KindUpstream.String(), ShouldEqual, "upstream_error")
			So(KindTimeout.String(), ShouldEqual, "timeout")
			So(KindNetwork.String(), ShouldEqual, "network_error")
			So(KindValidation.String(), ShouldEqual, "validation_error")
			So(KindUnexpected.String(), ShouldEqual, "unexpected_error")
		})

		Convey("KindOf falls back to unexpected for foreign errors", func() {
			So(KindOf(fmt.Errorf("plain")), ShouldEqual, KindUnexpected)
		})

		Convey("Validation errors carry the validation kind", func() {
			err := NewValidationError("missing argument: %s", "user_id")
			So(KindOf(err), ShouldEqual, KindValidation)
			So(err.Error(), ShouldContainSubstring, "user_id")
		})
	})
}
