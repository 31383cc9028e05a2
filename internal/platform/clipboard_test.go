package platform

import (
	"errors"
	"os/exec"
	"testing"
)

func stubClipboard(t *testing.T, unsupported bool, write func(string) error, available map[string]bool, run func(string, []string, string) error) {
	t.Helper()
	prevUnsupported, prevWrite, prevLook, prevRun := clipboardUnsupported, clipboardWrite, lookPath, runWithStdin
	t.Cleanup(func() {
		clipboardUnsupported, clipboardWrite, lookPath, runWithStdin = prevUnsupported, prevWrite, prevLook, prevRun
	})
	clipboardUnsupported = func() bool { return unsupported }
	clipboardWrite = write
	lookPath = func(bin string) (string, error) {
		if available[bin] {
			return "/usr/bin/" + bin, nil
		}
		return "", exec.ErrNotFound
	}
	runWithStdin = run
}

func TestWriteText_UsesLibraryWhenSupported(t *testing.T) {
	var got string
	stubClipboard(t, false, func(s string) error { got = s; return nil }, nil, nil)
	if err := (SystemClipboard{}).WriteText("rec_123"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got != "rec_123" {
		t.Fatalf("wrote %q", got)
	}
}

func TestWriteText_LibraryFailureIsCommandError(t *testing.T) {
	stubClipboard(t, false, func(string) error { return errors.New("exit status 1") }, nil, nil)
	var ce *CommandError
	if err := (SystemClipboard{}).WriteText("x"); !errors.As(err, &ce) {
		t.Fatalf("expected CommandError, got %v", err)
	}
}

func TestWriteText_FallsBackToCLITools(t *testing.T) {
	var ran string
	stubClipboard(t, true, nil, map[string]bool{"xclip": true}, func(name string, args []string, stdin string) error {
		ran = name + " " + args[0] + " " + stdin
		return nil
	})
	if err := (SystemClipboard{}).WriteText("hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if ran != "xclip -selection hello" {
		t.Fatalf("ran %q", ran)
	}
}

func TestWriteText_NoBackendIsUnsupported(t *testing.T) {
	stubClipboard(t, true, nil, nil, nil)
	err := (SystemClipboard{}).WriteText("hello")
	var ue *UnsupportedPlatformError
	if !errors.As(err, &ue) || ue.Feature != "clipboard" || len(ue.Tried) != len(fallbackTools) {
		t.Fatalf("expected UnsupportedPlatformError, got %v", err)
	}
}

func TestWriteText_EmptyText(t *testing.T) {
	stubClipboard(t, false, func(string) error { t.Fatalf("should not write"); return nil }, nil, nil)
	if err := (SystemClipboard{}).WriteText(""); err == nil {
		t.Fatalf("expected error for empty text")
	}
}
