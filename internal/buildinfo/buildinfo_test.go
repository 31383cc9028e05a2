package buildinfo

import (
	"strings"
	"testing"
)

func TestDisplayVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	cases := map[string]string{
		"2026.1.1":  "v2026.1.1",
		"v1.2.3":    "v1.2.3",
		"nightly-3": "nightly-3",
	}
	for in, want := range cases {
		Version = in
		if got := DisplayVersion(); got != want {
			t.Fatalf("DisplayVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInline(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	defer func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	}()

	Version = "1.0.0"
	Commit = "0123456789abcdef"
	Date = "2026-02-03T04:05:06Z"
	if got := Inline(); got != "v1.0.0 · 0123456 · 2026-02-03" {
		t.Fatalf("Inline = %q", got)
	}

	Commit = "none"
	Date = "unknown"
	if got := Inline(); got != "v1.0.0" {
		t.Fatalf("Inline without commit/date = %q", got)
	}
}

func TestCurrent(t *testing.T) {
	info := Current()
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Fatalf("Current = %+v", info)
	}
}
