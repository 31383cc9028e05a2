package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration with the API key redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.cfg.Redacted()
			source := string(c.APIKeySource)
			if source == "" {
				source = "none"
			}
			return writeData(cmd, app, map[string]any{
				"configFile":   c.ConfigFile,
				"baseUrl":      c.BaseURL,
				"apiKey":       c.APIKey,
				"apiKeySource": source,
				"debug":        c.Debug,
				"exportDir":    c.ExportDir,
				"columns":      c.ColumnsPath,
				"pageSize":     c.PageSize,
			}, fieldGrid("config",
				[]string{"config file", c.ConfigFile},
				[]string{"base url", c.BaseURL},
				[]string{"api key", cmpOrNone(c.APIKey)},
				[]string{"api key source", source},
				[]string{"debug", strconv.FormatBool(c.Debug)},
				[]string{"export dir", cmpOrNone(c.ExportDir)},
				[]string{"columns", cmpOrNone(c.ColumnsPath)},
				[]string{"page size", strconv.Itoa(c.PageSize)},
			))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.cfg.ConfigFile
			if p == "" {
				var err error
				if p, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			return writeData(cmd, app, map[string]any{"path": p}, fieldGrid("config", []string{"path", p}))
		},
	})
	return cmd
}

func cmpOrNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
