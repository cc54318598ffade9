package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	var gotHeaders http.Header
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
		}
		switch r.URL.Path {
		case "/api/json":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/api/text":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("pong"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	ctx := context.Background()

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Do(ctx, http.MethodPost, "/json", map[string]string{"a": "b"}, &out, WithHeader("X-Extra", "1")))
	assert.True(t, out.OK)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "1", gotHeaders.Get("X-Extra"))
	assert.Equal(t, "b", gotBody["a"])

	require.NoError(t, c.Do(ctx, http.MethodGet, "/json", nil, nil, WithHeader("Content-Type", "text/plain")))
	assert.Equal(t, "text/plain", gotHeaders.Get("Content-Type"), "caller header wins")

	var text string
	require.NoError(t, c.Do(ctx, http.MethodGet, "/text", nil, &text))
	assert.Equal(t, "pong", text)
}

func TestClient_DoErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/with-message":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"Email already registered"}`))
		case "/api/json-no-message":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		case "/api/text":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<h1>bad gateway</h1>"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	tests := []struct {
		path       string
		wantStatus int
		wantMsg    string
		wantData   any
	}{
		{"/with-message", http.StatusConflict, "Email already registered", map[string]any{"message": "Email already registered"}},
		{"/json-no-message", http.StatusBadRequest, "Request failed (400)", map[string]any{"error": "nope"}},
		{"/text", http.StatusBadGateway, "Request failed (502)", "<h1>bad gateway</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := c.Do(context.Background(), http.MethodGet, tt.path, nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantData, apiErr.Data)
			assert.Equal(t, tt.wantStatus, StatusOf(err))
		})
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv())

	t.Setenv(BaseURLEnv, "https://api.sharespace.test/api")
	assert.Equal(t, "https://api.sharespace.test/api", BaseURLFromEnv())
}

func TestMessageOr(t *testing.T) {
	assert.Equal(t, "Login failed", MessageOr(nil, "Login failed"))
	assert.Equal(t, "Invalid credentials", MessageOr(&APIError{Status: 401, Message: "Invalid credentials"}, "Login failed"))
	assert.Equal(t, "Login failed", MessageOr(&APIError{Status: 401}, "Login failed"))
}
