// Package session owns auth state: a persisted token+user snapshot and
// the in-memory state machine over it.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"zeelx/internal/core/domain"
)

// Store persists the session between app launches. Implementations
// must clear token and user together.
type Store interface {
	Save(token string, user *domain.User) error
	Load() (token string, user *domain.User, err error)
	Clear() error
}

// fileRecord is the on-disk layout: the two entries the app keeps.
type fileRecord struct {
	Token string       `json:"userToken,omitempty"`
	User  *domain.User `json:"userData,omitempty"`
}

// FileStore keeps the session in a single JSON file with owner-only
// permissions. Writes go through a temp file and rename so a crash
// never leaves a half-written session.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store at path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(fileRecord{Token: token, User: user})
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load() (string, *domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, err
	}

	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Unreadable session files are treated as absent.
		return "", nil, nil
	}
	return rec.Token, rec.User, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
