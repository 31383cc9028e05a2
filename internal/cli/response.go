package cli

import (
	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/format"
)

// writeData prints data as a JSON envelope or renders grid, depending on --format.
func writeData(cmd *cobra.Command, app *App, data any, grid format.Grid) error {
	if app.Format == format.JSON {
		return format.WriteJSON(cmd.OutOrStdout(), map[string]any{
			"ok":   true,
			"data": data,
		}, app.Pretty)
	}
	return format.WriteTable(cmd.OutOrStdout(), grid)
}

func fieldGrid(title string, rows ...[]string) format.Grid {
	return format.Grid{Title: title, Headers: []string{"Field", "Value"}, Rows: rows}
}
