package platform

import (
	"errors"
	"reflect"
	"testing"
)

func TestOpenFor_Darwin_UsesOpen(t *testing.T) {
	restore := stubStartCommand(t, map[string]error{
		"open": nil,
	})
	defer restore()

	if err := openFor("darwin", false, "", "https://example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got := drainCalls()
	want := []call{{name: "open", args: []string{"https://example.com"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("calls mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestOpenFor_Windows_TriesCandidatesUntilSuccess(t *testing.T) {
	restore := stubStartCommand(t, map[string]error{
		"rundll32": errors.New("no"),
		"cmd":      nil,
	})
	defer restore()

	if err := openFor("windows", false, "", "https://example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got := drainCalls()
	want := []call{
		{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "https://example.com"}},
		{name: "cmd", args: []string{"/c", "start", "", "https://example.com"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("calls mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestOpenFor_LinuxWSL_TriesWSLOpenersFirst(t *testing.T) {
	restore := stubStartCommand(t, map[string]error{
		"wslview": errors.New("missing"),
		"cmd.exe": nil,
	})
	defer restore()

	if err := openFor("linux", true, "", "https://example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got := drainCalls()
	want := []call{
		{name: "wslview", args: []string{"https://example.com"}},
		{name: "cmd.exe", args: []string{"/c", "start", "", "https://example.com"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("calls mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestOpenFor_Linux_RespectsBrowserEnv(t *testing.T) {
	restore := stubStartCommand(t, map[string]error{
		"br1": errors.New("no"),
		"br2": nil,
	})
	defer restore()

	// br1 gets URL appended; br2 uses placeholder replacement.
	if err := openFor("linux", false, "br1 --flag:br2 --arg=%s", "https://example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got := drainCalls()
	want := []call{
		{name: "br1", args: []string{"--flag", "https://example.com"}},
		{name: "br2", args: []string{"--arg=https://example.com"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("calls mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestOpenFor_Linux_FailureIsCommandError(t *testing.T) {
	restore := stubStartCommand(t, map[string]error{
		"br":       errors.New("no"),
		"xdg-open": errors.New("exec: not found"),
	})
	defer restore()

	err := openFor("linux", false, "br", "https://example.com")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Command != "xdg-open" {
		t.Fatalf("expected CommandError from xdg-open, got %v", err)
	}
	got := drainCalls()
	if len(got) != 2 || got[1].name != "xdg-open" {
		t.Fatalf("calls = %#v", got)
	}
}

func TestBrowserOpen_RejectsNonWebURLs(t *testing.T) {
	restore := stubStartCommand(t, nil)
	defer restore()

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)"} {
		var ce *CommandError
		if err := (Browser{}).Open(u); !errors.As(err, &ce) {
			t.Fatalf("Open(%q) = %v, want CommandError", u, err)
		}
	}
	if got := drainCalls(); len(got) != 0 {
		t.Fatalf("no command should run, got %#v", got)
	}
}

type call struct {
	name string
	args []string
}

var (
	calls []call
)

func drainCalls() []call {
	out := append([]call(nil), calls...)
	calls = nil
	return out
}

func stubStartCommand(t *testing.T, results map[string]error) func() {
	t.Helper()
	prev := startCommand
	calls = nil
	startCommand = func(name string, args ...string) error {
		calls = append(calls, call{name: name, args: append([]string(nil), args...)})
		if err, ok := results[name]; ok {
			return err
		}
		return nil
	}
	return func() {
		startCommand = prev
		calls = nil
	}
}
