package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/config"
	"github.com/attio-tui/attio-tui/internal/model"
	"github.com/attio-tui/attio-tui/internal/state"
	"github.com/attio-tui/attio-tui/internal/testutil"
)

func testApp(t *testing.T, cfg config.Config) (*App, *cobra.Command, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.attio.com"
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = config.DefaultPageSize
	}
	errOut := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetErr(errOut)
	return &App{cfg: &cfg, logger: testutil.NewTestLogger(t)}, cmd, errOut
}

func TestTUIOptions_RequiresKey(t *testing.T) {
	app, cmd, _ := testApp(t, config.Config{})
	if _, err := tuiOptions(cmd, app); err != errNoKey {
		t.Fatalf("expected errNoKey, got %v", err)
	}
}

func TestTUIOptions_RestoresSession(t *testing.T) {
	app, cmd, _ := testApp(t, config.Config{APIKey: "k", ExportDir: "/exports"})
	path, err := state.DefaultSessionPath()
	if err != nil {
		t.Fatalf("DefaultSessionPath: %v", err)
	}
	if err := state.SaveSession(path, state.Session{Category: "notes", ActiveTab: "json", DebugPanelOpen: true}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	opts, err := tuiOptions(cmd, app)
	if err != nil {
		t.Fatalf("tuiOptions: %v", err)
	}
	if opts.StartCategory == nil || opts.StartCategory.Kind != model.CategoryNotes {
		t.Fatalf("expected notes start category, got %v", opts.StartCategory)
	}
	snap := opts.Store.Snapshot()
	if snap.ActiveTab != state.TabJSON || !snap.DebugPanelOpen {
		t.Fatalf("expected restored tab and debug panel, got %v %v", snap.ActiveTab, snap.DebugPanelOpen)
	}
	if opts.SessionPath != path || opts.ExportDir != "/exports" {
		t.Fatalf("unexpected paths: %q %q", opts.SessionPath, opts.ExportDir)
	}
	if opts.Pager == nil || opts.Prober == nil || opts.Webhooks == nil {
		t.Fatalf("expected data sources wired")
	}
}

func TestTUIOptions_NoSessionKeepsDefaults(t *testing.T) {
	app, cmd, _ := testApp(t, config.Config{APIKey: "k"})
	opts, err := tuiOptions(cmd, app)
	if err != nil {
		t.Fatalf("tuiOptions: %v", err)
	}
	if opts.StartCategory != nil {
		t.Fatalf("expected no start category, got %v", opts.StartCategory)
	}
	if !strings.HasSuffix(opts.ColumnsPath, filepath.Join("attio-tui", "columns.json")) {
		t.Fatalf("expected default columns path, got %q", opts.ColumnsPath)
	}
}

func TestTUIOptions_MalformedColumnsWarns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "columns.json")
	if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	app, cmd, errOut := testApp(t, config.Config{APIKey: "k", ColumnsPath: path})
	opts, err := tuiOptions(cmd, app)
	if err != nil {
		t.Fatalf("tuiOptions: %v", err)
	}
	if !strings.Contains(errOut.String(), "warning") {
		t.Fatalf("expected warning, got %q", errOut.String())
	}
	if len(opts.Store.Overrides()) != 0 {
		t.Fatalf("expected empty overrides, got %v", opts.Store.Overrides())
	}
}

func TestOpenLogger_DiscardsWithoutDebug(t *testing.T) {
	logger, closer, err := openLogger(&config.Config{})
	if err != nil || closer != nil || logger == nil {
		t.Fatalf("expected discard logger, got %v %v %v", logger, closer, err)
	}
}
