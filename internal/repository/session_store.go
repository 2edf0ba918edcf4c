package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

// SessionStore persists at most one serialized user record on disk, mirroring
// the single local-storage key the dashboards rely on. The record never
// contains a password field.
type SessionStore struct {
	path string
}

// NewSessionStore returns a store writing to the given path.
func NewSessionStore(path string) *SessionStore {
	if path == "" {
		path = "./data/lms_user.json"
	}
	return &SessionStore{path: path}
}

// Load reads the persisted record. An absent or corrupt file is treated as
// "no session" and never surfaces an error.
func (s *SessionStore) Load() *models.User {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	if user.ID == "" || !user.Role.Valid() {
		return nil
	}
	return &user
}

// Save writes the password-stripped record, replacing any previous one.
func (s *SessionStore) Save(user models.User) error {
	payload, err := json.Marshal(user.Sanitized())
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare session directory: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// Clear removes the persisted record. Missing files are fine.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}
