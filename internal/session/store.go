// Package session implements the admin session guard: a locally persisted
// authenticated flag plus session-start timestamp, expired lazily at
// access time rather than by a timer. The state lives in a small JSON
// file outside both stores.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// State is the persisted session record: whether an admin is
// authenticated and when the session began (Unix milliseconds).
type State struct {
	Authenticated bool  `json:"admin_authenticated"`
	SessionStart  int64 `json:"admin_session"`
}

// Store reads and writes the session state file. A missing file reads as
// the zero State, which the guard treats as unauthenticated.
type Store struct {
	path string
}

// NewStore returns a Store persisting to the given path.
func NewStore(path string) *Store { return &Store{path: path} }

// Read loads the current state. A file that does not exist yet is not an
// error; it simply means no session has ever been started.
func (s *Store) Read() (State, error) {
	var st State
	body, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(body, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Write persists the state, creating the parent directory if needed.
func (s *Store) Write(st State) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	body, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, body, 0o600)
}

// Clear removes the state file. Clearing an already absent file is fine.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
