package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharespace/internal/client"
	"sharespace/internal/mood"
)

func newSession(t *testing.T) (*client.Session, *client.LocalStorage) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": "u1", "name": "Ada", "email": body["email"]},
		})
	}))
	t.Cleanup(srv.Close)

	local := client.NewLocalStorage(filepath.Join(t.TempDir(), "storage.json"))
	return client.NewSession(client.New(srv.URL+"/api"), local, nil), local
}

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

// drain runs cmd and feeds the resulting messages back into m. It follows
// auth and logout results one level further and stops there, so toast
// timers and cursor blinks are never waited on.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	default:
		var next tea.Cmd
		m, next = m.Update(msg)
		switch msg.(type) {
		case authResultMsg, loggedOutMsg:
			m = drain(t, m, next)
		}
	}
	return m
}

func TestLogin_SuccessNavigatesAndStoresSession(t *testing.T) {
	session, local := newSession(t)
	var m tea.Model = New(session, mood.NewTracker(nil))
	require.Contains(t, m.View(), "Login")

	m = typeText(m, "ada@example.com")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "secret1")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Processing...")

	m = drain(t, m, cmd)

	root := m.(Model)
	assert.Equal(t, pageDashboard, root.page)
	assert.Equal(t, client.WelcomeBackToast, root.toast)
	assert.Contains(t, m.View(), "Welcome, Ada.")

	token, user, err := local.Session()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestLogin_FailureShowsServerMessage(t *testing.T) {
	session, _ := newSession(t)
	var m tea.Model = New(session, mood.NewTracker(nil))

	m = typeText(m, "ada@example.com")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "wrong")
	m, cmd := press(m, tea.KeyEnter)
	m = drain(t, m, cmd)

	root := m.(Model)
	assert.Equal(t, pageLogin, root.page)
	assert.Equal(t, "Invalid credentials", root.toast)
	assert.True(t, root.toastIsErr)
}

func TestNew_ResumesStoredSession(t *testing.T) {
	session, local := newSession(t)
	require.NoError(t, local.SaveSession("tok", &client.User{ID: "u1", Name: "Grace"}))

	m := New(session, mood.NewTracker(nil))
	assert.Equal(t, pageDashboard, m.page)
	assert.Contains(t, m.View(), "Welcome, Grace.")
	assert.Equal(t, pageMood, m.OpenMood().page)
}

func TestOpenMood_RequiresSession(t *testing.T) {
	session, _ := newSession(t)
	m := New(session, mood.NewTracker(nil)).OpenMood()
	assert.Equal(t, pageLogin, m.page)
}

func TestMoodPage(t *testing.T) {
	tracker := mood.NewTracker(nil)
	mm := newMoodModel(tracker)
	assert.Contains(t, mm.View(), mood.EmptyMessage)
	assert.NotContains(t, mm.View(), "Mood Overview")

	mm, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.True(t, mm.showCreate)

	mm, cmd := mm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, toastMsg{text: mood.SelectToast, isErr: true}, cmd())

	mm, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("6")})
	assert.Equal(t, "🤗", mm.selected)
	mm, _ = mm.Update(tea.KeyMsg{Type: tea.KeyTab})
	mm, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  good friends ")})

	start := time.Now()
	mm, cmd = mm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, mm.saving)
	assert.Zero(t, tracker.Len(), "entry is added only after the delay")

	msg := cmd()
	assert.GreaterOrEqual(t, time.Since(start), mood.SaveDelay-50*time.Millisecond)
	mm, cmd = mm.Update(msg)
	assert.Equal(t, toastMsg{text: mood.LoggedToast}, cmd())

	require.Equal(t, 1, tracker.Len())
	entry := tracker.Entries()[0]
	assert.Equal(t, "🤗", entry.Mood)
	assert.Equal(t, "good friends", entry.Note)

	assert.False(t, mm.showCreate)
	assert.Empty(t, mm.selected)
	assert.Empty(t, mm.note.Value())

	view := mm.View()
	assert.Contains(t, view, "Mood Overview")
	assert.True(t, strings.Contains(view, "100%"))
	assert.NotContains(t, view, mood.EmptyMessage)
}

func TestDashboard_Logout(t *testing.T) {
	session, local := newSession(t)
	require.NoError(t, local.SaveSession("tok", &client.User{ID: "u1", Name: "Grace"}))

	var m tea.Model = New(session, mood.NewTracker(nil))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = drain(t, m, cmd)

	assert.Equal(t, pageLogin, m.(Model).page)
	token, _, err := local.Session()
	require.NoError(t, err)
	assert.Empty(t, token)
}
