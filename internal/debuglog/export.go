package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/attio-tui/attio-tui/internal/buildinfo"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// FileWriter is the slice of the export store a snapshot needs.
type FileWriter interface {
	WriteJSON(path string, v any) error
	AppendLine(path string, text string) error
}

type Environment struct {
	buildinfo.Info
	BaseURL      string `json:"baseUrl,omitempty"`
	Term         string `json:"term,omitempty"`
	ColorProfile string `json:"colorProfile"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// CollectEnvironment gathers build, terminal and endpoint metadata.
func CollectEnvironment(baseURL string, width, height int) Environment {
	return Environment{
		Info:         buildinfo.Current(),
		BaseURL:      strings.TrimSpace(baseURL),
		Term:         os.Getenv("TERM"),
		ColorProfile: profileName(termenv.EnvColorProfile()),
		Width:        width,
		Height:       height,
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

type Snapshot struct {
	CreatedAt   time.Time   `json:"createdAt"`
	Environment Environment `json:"environment"`
	UIState     string      `json:"uiState"`
	Requests    []Entry     `json:"requests"`
	Frame       string      `json:"frame,omitempty"`
}

// NewSnapshot captures the most recent ExportWindow entries of log. frame may be empty.
func NewSnapshot(now time.Time, env Environment, uiState string, log *Log, frame string) Snapshot {
	s := Snapshot{
		CreatedAt:   now.UTC(),
		Environment: env,
		UIState:     uiState,
		Requests:    []Entry{},
	}
	if log != nil {
		s.Requests = log.Recent(ExportWindow)
	}
	if frame != "" {
		s.Frame = ansi.Strip(frame)
	}
	return s
}

const exportIndex = "exports.log"

// FileName is the snapshot file name for t, unique to the millisecond.
func FileName(t time.Time) string {
	return "attio-tui-debug-" + t.UTC().Format("20060102-150405.000") + ".json"
}

// Export writes snap under dir and records it in the export index. Only the snapshot
// write can fail the export.
func Export(w FileWriter, dir string, snap Snapshot) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("export: missing directory")
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if snap.Requests == nil {
		snap.Requests = []Entry{}
	}
	path := filepath.Join(dir, FileName(snap.CreatedAt))
	if err := w.WriteJSON(path, snap); err != nil {
		return "", fmt.Errorf("export: write snapshot: %w", err)
	}
	line := fmt.Sprintf("%s\t%s\t%d requests", snap.CreatedAt.Format(time.RFC3339), filepath.Base(path), len(snap.Requests))
	_ = w.AppendLine(filepath.Join(dir, exportIndex), line)
	return path, nil
}
