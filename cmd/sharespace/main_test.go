package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharespace/internal/client"
)

type fakeAPI struct {
	mu      sync.Mutex
	user    map[string]any
	updates []map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	authed := r.Header.Get("Authorization") == "Bearer tok"

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Login successful", "token": "tok", "user": f.user})
	case r.URL.Path == "/api/auth/verify":
		if !authed {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"valid": true, "user": f.user})
	case r.URL.Path == "/api/users/me" && r.Method == http.MethodGet:
		if !authed {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user": f.user})
	case r.URL.Path == "/api/users/me" && r.Method == http.MethodPut:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.updates = append(f.updates, body)
		for k, v := range body {
			f.user[k] = v
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Profile updated successfully", "user": f.user})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type harness struct {
	api     *fakeAPI
	url     string
	storage string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := &fakeAPI{user: map[string]any{"id": "u1", "name": "Ada", "email": "ada@example.com", "bio": "Hi"}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return &harness{api: api, url: srv.URL + "/api", storage: filepath.Join(t.TempDir(), "storage.json")}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", h.url, "--storage", h.storage}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin_StoresSession(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "login", "--email", "ada@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, client.WelcomeBackToast)
	assert.Contains(t, out, "Signed in as Ada <ada@example.com>.")

	token, user, err := client.NewLocalStorage(h.storage).Session()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestLogin_PromptsForMissingValues(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "ada@example.com\nsecret1\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Signed in as Ada")
}

func TestLogin_ServerMessageIsReturned(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "login", "-e", "ada@example.com", "-p", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestWhoamiAndVerify(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = h.run(t, "", "login", "-e", "ada@example.com", "-p", "secret1")
	require.NoError(t, err)

	out, err := h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:    Ada")
	assert.Contains(t, out, "Bio:     Hi")

	out, err = h.run(t, "", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Token is valid for Ada <ada@example.com>.")
}

func TestVerify_ExpiredTokenClearsSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, client.NewLocalStorage(h.storage).SaveSession("stale", &client.User{ID: "u1"}))

	_, err := h.run(t, "", "verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")

	token, user, err := client.NewLocalStorage(h.storage).Session()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestProfileSet_SendsOnlyChangedFlags(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "", "login", "-e", "ada@example.com", "-p", "secret1")
	require.NoError(t, err)

	_, err = h.run(t, "", "profile", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	out, err := h.run(t, "", "profile", "set", "--bio", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated successfully")

	out, err = h.run(t, "", "profile", "set", "--name", "Ada L.", "--picture", "https://img.test/a.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Picture: https://img.test/a.png")

	h.api.mu.Lock()
	defer h.api.mu.Unlock()
	require.Len(t, h.api.updates, 2)
	assert.Equal(t, map[string]any{"bio": ""}, h.api.updates[0])
	assert.Equal(t, map[string]any{"name": "Ada L.", "profilePictureUrl": "https://img.test/a.png"}, h.api.updates[1])

	_, user, err := client.NewLocalStorage(h.storage).Session()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada L.", user.Name)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "", "login", "-e", "ada@example.com", "-p", "secret1")
	require.NoError(t, err)

	out, err := h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = h.run(t, "", "verify")
	assert.ErrorIs(t, err, errNotLoggedIn)
}
