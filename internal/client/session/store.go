// Package session holds the client-side session state: the persisted token,
// user data and expiry, and the guard that decides whether a privileged
// destination may be entered.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// User is the display identity cached next to the token.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Data is the client-held session: its only persistence is the Store; the
// server keeps no copy.
type Data struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// Store persists the three session entries (token, user data, expiry).
// Save writes all three; Clear removes all three; a partially present set
// must never be reported as a session.
type Store interface {
	Save(d Data) error
	// Load returns the stored session and whether one was present.
	Load() (Data, bool, error)
	Clear() error
}

// The three entries, stored independently but only meaningful together.
const (
	tokenFile  = "token"
	userFile   = "user.json"
	expiryFile = "expiry"
)

// FileStore keeps the session under a config directory, one file per entry.
type FileStore struct{ dir string }

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// DefaultDir returns the per-user config directory for the client.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "hotelmanagement")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hotelmanagement")
}

// Save persists all three entries. Each file is written whole via a temp file
// and rename so no reader observes a torn entry.
func (s *FileStore) Save(d Data) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	userJSON, err := json.Marshal(d.User)
	if err != nil {
		return err
	}
	entries := map[string][]byte{
		tokenFile:  []byte(d.Token),
		userFile:   userJSON,
		expiryFile: []byte(d.ExpiresAt.UTC().Format(time.RFC3339)),
	}
	for name, b := range entries {
		if err := s.writeFile(name, b); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the three entries back. Any missing or unreadable entry means
// no session.
func (s *FileStore) Load() (Data, bool, error) {
	tok, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return Data{}, false, ignoreNotExist(err)
	}
	userJSON, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return Data{}, false, ignoreNotExist(err)
	}
	expiry, err := os.ReadFile(filepath.Join(s.dir, expiryFile))
	if err != nil {
		return Data{}, false, ignoreNotExist(err)
	}

	var d Data
	d.Token = strings.TrimSpace(string(tok))
	if err := json.Unmarshal(userJSON, &d.User); err != nil {
		return Data{}, false, nil
	}
	d.ExpiresAt, err = time.Parse(time.RFC3339, strings.TrimSpace(string(expiry)))
	if err != nil || d.Token == "" {
		return Data{}, false, nil
	}
	return d, true, nil
}

// Clear removes the three entries together; already-absent files are fine.
func (s *FileStore) Clear() error {
	var firstErr error
	for _, name := range []string{tokenFile, userFile, expiryFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *FileStore) writeFile(name string, b []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

func ignoreNotExist(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
