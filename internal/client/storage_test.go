package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s := NewLocalStorage(path)

	_, ok, err := s.GetItem(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(TokenKey, "abc"))
	require.NoError(t, s.SetItem("other", "1"))

	reopened := NewLocalStorage(path)
	v, ok, err := reopened.GetItem(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, reopened.RemoveItem(TokenKey))
	_, ok, err = s.GetItem(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	v, _, _ = s.GetItem("other")
	assert.Equal(t, "1", v)
}

func TestLocalStorage_Session(t *testing.T) {
	s := NewLocalStorage(filepath.Join(t.TempDir(), "storage.json"))

	require.NoError(t, s.SaveSession("tok", &User{ID: "u1", Name: "Ada", Email: "ada@example.com"}))
	token, user, err := s.Session()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name)

	require.NoError(t, s.SetItem(UserKey, "{not json"))
	token, user, err = s.Session()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Nil(t, user)

	require.NoError(t, s.ClearSession())
	token, user, err = s.Session()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestLocalStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, _, err := NewLocalStorage(path).GetItem(TokenKey)
	assert.Error(t, err)
}
