package columns

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformed marks an override file that could not be used. Callers fall back to the
// built-in defaults and may log it.
var ErrMalformed = errors.New("malformed column overrides")

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "attio-tui", "columns.json"), nil
}

// LoadOverrides always returns a usable (possibly empty) Overrides. A missing file is not
// an error; unreadable or malformed content returns empty overrides plus an error wrapping
// ErrMalformed. Keys whose entries are schema-invalid are dropped individually.
func LoadOverrides(path string) (Overrides, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Overrides{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return Overrides{}, nil
	}

	var raw map[string][]Override
	if err := json.Unmarshal(b, &raw); err != nil {
		return Overrides{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	out := Overrides{}
	var dropped []string
	for key, list := range raw {
		key = strings.TrimSpace(key)
		if key == "" || !schemaValid(list) {
			dropped = append(dropped, key)
			continue
		}
		out[key] = list
	}
	if len(dropped) > 0 {
		return out, fmt.Errorf("%w: invalid entries for %s", ErrMalformed, strings.Join(dropped, ", "))
	}
	return out, nil
}

func schemaValid(list []Override) bool {
	for _, o := range list {
		if strings.TrimSpace(o.Attribute) == "" || o.Width < 0 {
			return false
		}
	}
	return true
}

// SaveOverrides writes o atomically, creating parent directories.
func SaveOverrides(path string, o Overrides) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("missing path")
	}
	if o == nil {
		o = Overrides{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
