package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/attio-tui/attio-tui/internal/columns"
	"github.com/attio-tui/attio-tui/internal/format"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Inspect and reset table column overrides",
	}
	cmd.AddCommand(newColumnsShowCmd(app))
	cmd.AddCommand(newColumnsKeysCmd(app))
	cmd.AddCommand(newColumnsResetCmd(app))
	return cmd
}

func columnsPath(app *App) (string, error) {
	if p := strings.TrimSpace(app.cfg.ColumnsPath); p != "" {
		return p, nil
	}
	return columns.DefaultPath()
}

// loadColumns reads overrides, reporting a malformed file on stderr instead of failing.
func loadColumns(cmd *cobra.Command, app *App) (string, columns.Overrides, error) {
	path, err := columnsPath(app)
	if err != nil {
		return "", nil, err
	}
	o, err := columns.LoadOverrides(path)
	if err != nil {
		if !errors.Is(err, columns.ErrMalformed) {
			return "", nil, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return path, o, nil
}

type columnRow struct {
	Attribute string `json:"attribute"`
	Label     string `json:"label"`
	Width     int    `json:"width"`
	Source    string `json:"source"`
}

func columnRows(key string, o columns.Overrides) []columnRow {
	source := "default"
	if _, ok := o[key]; ok {
		source = "override"
		// Resolve drops an override list with unknown attributes.
		known := map[string]bool{}
		for _, d := range columns.Definitions(key) {
			known[d.Attribute] = true
		}
		for _, ov := range o[key] {
			if !known[ov.Attribute] {
				source = "default (override ignored)"
				break
			}
		}
	}
	resolved := columns.Resolve(key, o)
	rows := make([]columnRow, 0, len(resolved))
	for _, c := range resolved {
		rows = append(rows, columnRow{Attribute: c.Attribute, Label: c.Label, Width: c.Width, Source: source})
	}
	return rows
}

func newColumnsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [key]",
		Short: "Show resolved columns for one entity key, or for all built-in keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, o, err := loadColumns(cmd, app)
			if err != nil {
				return err
			}
			keys := columns.Keys()
			if len(args) == 1 {
				keys = []string{strings.TrimSpace(args[0])}
			}

			data := map[string][]columnRow{}
			grid := format.Grid{Headers: []string{"Key", "Attribute", "Label", "Width", "Source"}}
			for _, k := range keys {
				rows := columnRows(k, o)
				data[k] = rows
				for _, r := range rows {
					grid.Rows = append(grid.Rows, []string{k, r.Attribute, r.Label, strconv.Itoa(r.Width), r.Source})
				}
			}
			return writeData(cmd, app, data, grid)
		},
	}
}

func newColumnsKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List entity keys with built-in column sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, o, err := loadColumns(cmd, app)
			if err != nil {
				return err
			}
			keys := columns.Keys()
			grid := format.Grid{Headers: []string{"Key", "Overridden"}}
			for _, k := range keys {
				_, ok := o[k]
				grid.Rows = append(grid.Rows, []string{k, strconv.FormatBool(ok)})
			}
			return writeData(cmd, app, keys, grid)
		},
	}
}

func newColumnsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [key]",
		Short: "Remove overrides for one entity key, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, o, err := loadColumns(cmd, app)
			if err != nil {
				return err
			}
			removed := []string{}
			if len(args) == 1 {
				k := strings.TrimSpace(args[0])
				if _, ok := o[k]; ok {
					delete(o, k)
					removed = append(removed, k)
				}
			} else {
				for k := range o {
					removed = append(removed, k)
				}
				sort.Strings(removed)
				o = columns.Overrides{}
			}
			if err := columns.SaveOverrides(path, o); err != nil {
				return err
			}
			grid := format.Grid{Headers: []string{"Removed"}}
			for _, k := range removed {
				grid.Rows = append(grid.Rows, []string{k})
			}
			return writeData(cmd, app, map[string]any{"path": path, "removed": removed}, grid)
		},
	}
}
