// Package cli wires the cobra command tree. With no subcommand the root command
// starts the interactive browser.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/authstore"
	"github.com/attio-tui/attio-tui/internal/config"
	"github.com/attio-tui/attio-tui/internal/format"
)

type App struct {
	ConfigFile  string
	ColumnsPath string
	APIURL      string
	Debug       bool
	ExportDir   string
	PageSize    int
	Format      string
	Pretty      bool

	cfg      *config.Config
	logger   *slog.Logger
	logClose io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "attio-tui",
		Short:        "Terminal browser for an Attio workspace",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigFile, "config", "", "Path to config file (default: user config dir)")
	pf.StringVar(&app.ColumnsPath, "columns", "", "Path to column overrides (default: user config dir)")
	pf.StringVar(&app.APIURL, "api-url", "", "API base URL (or set ATTIO_BASE_URL)")
	pf.BoolVar(&app.Debug, "debug", false, "Write a debug log next to the config file")
	pf.StringVar(&app.ExportDir, "export-dir", "", "Directory for debug snapshots")
	pf.IntVar(&app.PageSize, "page-size", 0, fmt.Sprintf("Items per request (default %d, max %d)", config.DefaultPageSize, config.MaxPageSize))
	pf.StringVar(&app.Format, "format", format.Table, "Output format for subcommands (table|json)")
	pf.BoolVar(&app.Pretty, "pretty", false, "Indent JSON output")

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newVersionCmd(app))
	return cmd
}

func (app *App) load(cmd *cobra.Command) error {
	if !format.Valid(app.Format) {
		return fmt.Errorf("unsupported --format %q (want table or json)", app.Format)
	}
	app.Format = strings.ToLower(strings.TrimSpace(app.Format))

	// Warnings from loading land on stderr until the configured logger exists.
	bootstrap := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.Load(config.Options{
		ConfigFile:  app.ConfigFile,
		Flags:       cmd.Root().PersistentFlags(),
		Logger:      bootstrap,
		Credentials: storedKey,
	})
	if err != nil {
		return err
	}
	app.cfg = cfg

	logger, closer, err := openLogger(cfg)
	if err != nil {
		bootstrap.Warn("debug log unavailable", "error", err)
		logger, closer = slog.New(slog.DiscardHandler), nil
	}
	app.logger, app.logClose = logger, closer
	app.logger.Debug("config loaded", "file", cfg.ConfigFile, "base_url", cfg.BaseURL, "key_source", string(cfg.APIKeySource))
	return nil
}

func (app *App) close() error {
	if app.logClose == nil {
		return nil
	}
	err := app.logClose.Close()
	app.logClose = nil
	return err
}

func storedKey(baseURL string) (string, bool) {
	path, err := authstore.DefaultPath()
	if err != nil {
		return "", false
	}
	return authstore.Lookup(path, baseURL)
}
