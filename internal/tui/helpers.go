package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/attio-tui/attio-tui/internal/model"
)

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func cmpOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// truncate cuts s to w terminal cells, keeping styling intact.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "…")
}

// padRight pads plain text to w cells.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

func prettyJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// itemPayload is the raw API object when there is one, otherwise the item itself.
func itemPayload(it model.Item) any {
	if it.Raw != nil {
		return it.Raw
	}
	return it
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// markdownBody returns the long-form text of notes and tasks.
func markdownBody(it model.Item) string {
	for _, k := range []string{"content_markdown", "content_plaintext"} {
		if s, ok := it.Raw[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
