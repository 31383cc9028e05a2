package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/attio-tui/attio-tui/internal/config"
)

// openLogger returns a JSON logger writing to debug.log beside the config file when
// debug is on, and a discarding logger otherwise.
func openLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg == nil || !cfg.Debug {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	path, err := debugLogPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func debugLogPath(cfg *config.Config) (string, error) {
	if cfg.ConfigFile != "" {
		return filepath.Join(filepath.Dir(cfg.ConfigFile), "debug.log"), nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), "debug.log"), nil
}
