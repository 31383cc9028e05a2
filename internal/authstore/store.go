// Package authstore keeps API keys on disk, one per API base URL. Keys are opaque.
package authstore

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Credential struct {
	APIKey    string    `json:"apiKey"`
	Workspace string    `json:"workspace,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	Keys map[string]Credential `json:"keys"`
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "attio-tui", "credentials.json"), nil
}

func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.Keys == nil {
		s.Keys = map[string]Credential{}
	}
	return &s, nil
}

// LoadOrEmpty is Load, except a missing file yields an empty store.
func LoadOrEmpty(path string) (*Store, error) {
	s, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Store{Keys: map[string]Credential{}}, nil
	}
	return s, err
}

func SaveAtomic(path string, s *Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if s.Keys == nil {
		s.Keys = map[string]Credential{}
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func normalize(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

func (s *Store) Get(baseURL string) (Credential, bool) {
	if s == nil || s.Keys == nil {
		return Credential{}, false
	}
	baseURL = normalize(baseURL)
	if baseURL == "" {
		return Credential{}, false
	}
	c, ok := s.Keys[baseURL]
	if !ok || strings.TrimSpace(c.APIKey) == "" {
		return Credential{}, false
	}
	c.APIKey = strings.TrimSpace(c.APIKey)
	return c, true
}

func (s *Store) Set(baseURL, apiKey, workspace string) {
	if s.Keys == nil {
		s.Keys = map[string]Credential{}
	}
	baseURL = normalize(baseURL)
	apiKey = strings.TrimSpace(apiKey)
	if baseURL == "" || apiKey == "" {
		return
	}
	s.Keys[baseURL] = Credential{APIKey: apiKey, Workspace: strings.TrimSpace(workspace), UpdatedAt: time.Now().UTC()}
}

func (s *Store) Delete(baseURL string) bool {
	if s == nil || s.Keys == nil {
		return false
	}
	baseURL = normalize(baseURL)
	if _, ok := s.Keys[baseURL]; !ok {
		return false
	}
	delete(s.Keys, baseURL)
	return true
}

// Lookup reads path and returns the key stored for baseURL, if any. Errors reading the
// file are treated as "no key".
func Lookup(path, baseURL string) (string, bool) {
	s, err := Load(path)
	if err != nil {
		return "", false
	}
	c, ok := s.Get(baseURL)
	return c.APIKey, ok
}
