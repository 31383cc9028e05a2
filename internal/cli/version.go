package cli

import (
	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/buildinfo"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Current()
			return writeData(cmd, app, map[string]any{
				"version":    info.Version,
				"rawVersion": buildinfo.Version,
				"commit":     info.Commit,
				"date":       info.Date,
				"go":         info.GoVersion,
				"platform":   info.Platform,
			}, fieldGrid("attio-tui",
				[]string{"version", info.Version},
				[]string{"commit", info.Commit},
				[]string{"date", info.Date},
				[]string{"go", info.GoVersion},
				[]string{"platform", info.Platform},
			))
		},
	}
}
