package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time via -ldflags -X.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Current collects build and runtime identification for diagnostics.
func Current() Info {
	return Info{
		Version:   DisplayVersion(),
		Commit:    strings.TrimSpace(Commit),
		Date:      strings.TrimSpace(Date),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// DisplayVersion returns "dev" for unversioned builds and a "v"-prefixed version
// otherwise. `go install ...@vX` builds fall back to the embedded module version.
func DisplayVersion() string {
	v := strings.TrimSpace(Version)
	if v == "" || v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			if mv := strings.TrimSpace(bi.Main.Version); mv != "" && mv != "(devel)" {
				v = mv
			}
		}
	}
	switch {
	case v == "" || v == "dev" || v == "(devel)":
		return "dev"
	case strings.HasPrefix(v, "v"):
		return v
	case v[0] >= '0' && v[0] <= '9':
		return "v" + v
	}
	return v
}

// Inline is the compact "v1.2.3 · abc1234 · 2026-01-02" form used in the header.
func Inline() string {
	parts := []string{DisplayVersion()}
	if c := shortCommit(Commit); c != "" {
		parts = append(parts, c)
	}
	if d := shortDate(Date); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ")
}

func shortCommit(commit string) string {
	c := strings.TrimSpace(commit)
	if c == "" || c == "none" {
		return ""
	}
	if len(c) <= 7 {
		return c
	}
	return c[:7]
}

func shortDate(date string) string {
	d := strings.TrimSpace(date)
	if d == "" || d == "unknown" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, d); err == nil {
		return t.Format("2006-01-02")
	}
	if len(d) >= 10 {
		return d[:10]
	}
	return d
}
