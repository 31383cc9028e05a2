// Package columns resolves the table columns shown for an entity key from user overrides
// and built-in defaults.
package columns

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/attio-tui/attio-tui/internal/model"
)

// Override is one user-configured column. Label and Width are optional.
type Override struct {
	Attribute string `json:"attribute"`
	Label     string `json:"label,omitempty"`
	Width     int    `json:"width,omitempty"`
}

// Overrides maps entity key to an ordered column list.
type Overrides map[string][]Override

type Resolved struct {
	Attribute string
	Label     string
	Width     int
	Value     Extractor
}

// Cell renders the column for it.
func (c Resolved) Cell(it model.Item) string {
	if c.Value == nil {
		return ""
	}
	return c.Value(it)
}

// Resolve never returns an empty slice. A configured list containing any attribute the
// defaults do not know is discarded as a whole.
func Resolve(key string, overrides Overrides) []Resolved {
	defs := Definitions(key)
	byAttr := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byAttr[d.Attribute] = d
	}

	configured := overrides[key]
	if !validOverrides(configured, byAttr) {
		configured = nil
	}
	if len(configured) == 0 {
		configured = make([]Override, 0, len(defs))
		for _, d := range defs {
			configured = append(configured, Override{Attribute: d.Attribute})
		}
	}

	seen := make(map[string]bool, len(configured))
	out := make([]Resolved, 0, len(configured))
	for _, o := range configured {
		attr := strings.TrimSpace(o.Attribute)
		if seen[attr] {
			continue
		}
		seen[attr] = true

		def := byAttr[attr]
		label := strings.TrimSpace(o.Label)
		if label == "" {
			label = def.Label
		}
		if label == "" {
			label = model.TitleCase(attr)
		}
		width := o.Width
		if width <= 0 {
			width = def.Width
		}
		out = append(out, Resolved{
			Attribute: attr,
			Label:     label,
			Width:     maxInt(width, runewidth.StringWidth(label), 1),
			Value:     def.Value,
		})
	}
	return out
}

func validOverrides(list []Override, known map[string]Definition) bool {
	for _, o := range list {
		if _, ok := known[strings.TrimSpace(o.Attribute)]; !ok {
			return false
		}
	}
	return true
}

func maxInt(values ...int) int {
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}
