package state

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/attio-tui/attio-tui/internal/model"
)

// Session is the part of State that survives a restart.
type Session struct {
	Category       string `json:"category"`
	ActiveTab      string `json:"activeTab,omitempty"`
	DebugPanelOpen bool   `json:"debugPanelOpen,omitempty"`
}

func DefaultSessionPath() (string, error) {
	// Prefer OS config dir; falls back to HOME.
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "attio-tui", "session.json"), nil
}

func LoadSession(path string) (Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return Session{}, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func SaveSession(path string, sess Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(sess, "", "  ")
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

func SessionFrom(s State) Session {
	return Session{
		Category:       s.Category.String(),
		ActiveTab:      s.ActiveTab.String(),
		DebugPanelOpen: s.DebugPanelOpen,
	}
}

// Restore builds the starting state and category from a saved session. Unknown values
// fall back to the defaults.
func (sess Session) Restore() (State, model.Category) {
	st := Initial()
	if tab, ok := ParseTab(sess.ActiveTab); ok {
		st.ActiveTab = tab
	}
	st.DebugPanelOpen = sess.DebugPanelOpen
	c, ok := model.ParseCategory(sess.Category)
	if !ok {
		c = st.Category
	}
	return st, c
}
