// Package format writes command output as JSON or as a text table.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	JSON  = "json"
	Table = "table"
)

// Valid reports whether f names a supported output format.
func Valid(f string) bool {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case JSON, Table:
		return true
	}
	return false
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Grid is tabular output. Rows shorter than Headers are padded with blanks.
type Grid struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func WriteTable(w io.Writer, g Grid) error {
	if len(g.Headers) == 0 {
		return fmt.Errorf("table: no headers")
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if g.Title != "" {
		t.SetTitle(g.Title)
	}

	header := make(table.Row, len(g.Headers))
	for i, h := range g.Headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, r := range g.Rows {
		row := make(table.Row, len(g.Headers))
		for i := range row {
			if i < len(r) {
				row[i] = r[i]
			} else {
				row[i] = ""
			}
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
