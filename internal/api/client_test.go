package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lagerstyring-client/config"
)

func newTestClient(baseURL string) *Client {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	return NewClient(&cfg.API, zap.NewNop())
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"id": 3, "status_type": "Available"}`))
	}))
	defer server.Close()

	var out struct {
		ID         int64  `json:"id"`
		StatusType string `json:"status_type"`
	}
	err := newTestClient(server.URL).GetJSON(context.Background(), "/status/3", &out)

	require.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, "Available", out.StatusType)
}

func TestClient_ClassifiesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "device not found", http.StatusNotFound)
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient(server.URL).GetJSON(context.Background(), "/devices?query=x", &out)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Contains(t, httpErr.Body, "device not found")
}

func TestClient_ClassifiesParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": `)) // truncated body
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient(server.URL).GetJSON(context.Background(), "/status/1", &out)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, `{"id": `, parseErr.Body)
}

func TestClient_ClassifiesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	var out map[string]any
	err := newTestClient(server.URL).GetJSON(context.Background(), "/status/1", &out)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"status_code": 200, "token": "abc"}`))
	}))
	defer server.Close()

	var out struct {
		StatusCode int    `json:"status_code"`
		Token      string `json:"token"`
	}
	err := newTestClient(server.URL).PostJSON(context.Background(), "/login",
		map[string]string{"email": "a@b.c", "password": "pw"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "abc", out.Token)
}
