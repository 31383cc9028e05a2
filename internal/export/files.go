// Package export writes debug snapshots and their index to disk.
package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Files is the disk-backed file store. The zero value is ready to use.
type Files struct{}

// DefaultDir is where snapshots land when no export dir is configured.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("cannot determine user config dir")
	}
	return filepath.Join(dir, "attio-tui", "exports"), nil
}

// WriteJSON writes v as indented JSON, replacing path atomically.
func (Files) WriteJSON(path string, v any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// AppendLine appends text plus a newline to path.
func (Files) AppendLine(path string, text string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(strings.TrimRight(text, "\n") + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
