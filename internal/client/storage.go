package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	TokenKey           = "sharespace_token"
	UserKey            = "sharespace_user"
	ShownLoginToastKey = "shownLoginToast"
)

// LocalStorage is a string key/value store persisted as one JSON file.
type LocalStorage struct {
	path string
	mu   sync.Mutex
}

// DefaultStoragePath is <user config dir>/sharespace/storage.json.
func DefaultStoragePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir failed: %w", err)
	}
	return filepath.Join(dir, "sharespace", "storage.json"), nil
}

func NewLocalStorage(path string) *LocalStorage {
	return &LocalStorage{path: path}
}

func (s *LocalStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *LocalStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(items)
}

func (s *LocalStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

// SaveSession stores whatever of token and user is present.
func (s *LocalStorage) SaveSession(token string, user *User) error {
	if token != "" {
		if err := s.SetItem(TokenKey, token); err != nil {
			return err
		}
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user failed: %w", err)
		}
		if err := s.SetItem(UserKey, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

// Session returns the stored token and user. A corrupt user entry is
// reported as absent.
func (s *LocalStorage) Session() (string, *User, error) {
	token, _, err := s.GetItem(TokenKey)
	if err != nil {
		return "", nil, err
	}
	rawUser, ok, err := s.GetItem(UserKey)
	if err != nil || !ok {
		return token, nil, err
	}
	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return token, nil, nil
	}
	return token, &user, nil
}

func (s *LocalStorage) ClearSession() error {
	if err := s.RemoveItem(TokenKey); err != nil {
		return err
	}
	return s.RemoveItem(UserKey)
}

func (s *LocalStorage) read() (map[string]string, error) {
	items := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage failed: %w", err)
	}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode storage %s failed: %w", s.path, err)
	}
	return items, nil
}

func (s *LocalStorage) write(items map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir failed: %w", err)
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage failed: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write storage failed: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace storage failed: %w", err)
	}
	return nil
}

// SessionStorage lives only as long as the process, like a browser tab's
// sessionStorage.
type SessionStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{items: make(map[string]string)}
}

func (s *SessionStorage) GetItem(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[key]
}

func (s *SessionStorage) SetItem(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}
