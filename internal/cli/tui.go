package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/columns"
	"github.com/attio-tui/attio-tui/internal/export"
	"github.com/attio-tui/attio-tui/internal/model"
	"github.com/attio-tui/attio-tui/internal/resources"
	"github.com/attio-tui/attio-tui/internal/state"
	"github.com/attio-tui/attio-tui/internal/tui"
)

func runTUI(cmd *cobra.Command, app *App) error {
	opts, err := tuiOptions(cmd, app)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), opts)
}

// tuiOptions builds everything the browser needs from the loaded configuration.
func tuiOptions(cmd *cobra.Command, app *App) (tui.Options, error) {
	cfg, logger := app.cfg, app.logger
	if cfg.APIKey == "" {
		return tui.Options{}, errNoKey
	}

	client := apiClient(app, cfg.APIKey)

	colPath, err := columnsPath(app)
	if err != nil {
		logger.Warn("column overrides disabled", "error", err)
		colPath = ""
	}
	overrides, err := columns.LoadOverrides(colPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		logger.Warn("column overrides", "path", colPath, "error", err)
	}

	initial := state.Initial()
	var start *model.Category
	sessionPath, err := state.DefaultSessionPath()
	if err != nil {
		sessionPath = ""
	} else if sess, err := state.LoadSession(sessionPath); err == nil {
		var c model.Category
		initial, c = sess.Restore()
		start = &c
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("session not restored", "path", sessionPath, "error", err)
	}

	store := state.NewStore(state.StoreOptions{
		Initial:   &initial,
		Overrides: overrides,
		Logger:    logger,
	})

	exportDir := cfg.ExportDir
	if exportDir == "" {
		if d, err := export.DefaultDir(); err == nil {
			exportDir = d
		}
	}

	opts := tui.Options{
		Store:       store,
		Pager:       resources.NewRegistry(client, cfg.PageSize),
		Prober:      resources.NewStatusProber(client),
		Webhooks:    resources.NewWebhooks(client),
		BaseURL:     cfg.BaseURL,
		ExportDir:   exportDir,
		ColumnsPath: colPath,
		SessionPath: sessionPath,
		Logger:      logger,

		StartCategory: start,
	}
	return opts, nil
}
