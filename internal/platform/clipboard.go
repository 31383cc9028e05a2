package platform

import (
	"bytes"
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes through atotto/clipboard and falls back to common CLI tools
// when that library finds no backend.
type SystemClipboard struct{}

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	clipboardWrite       = clipboard.WriteAll
	lookPath             = exec.LookPath
	runWithStdin         = func(name string, args []string, stdin string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdin = strings.NewReader(stdin)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return errors.New(msg)
			}
			return err
		}
		return nil
	}
)

var fallbackTools = []struct {
	bin  string
	args []string
}{
	{bin: "pbcopy"},
	{bin: "wl-copy"},
	{bin: "xclip", args: []string{"-selection", "clipboard"}},
	{bin: "clip.exe"},
}

func (SystemClipboard) WriteText(text string) error {
	if text == "" {
		return &CommandError{Command: "clipboard", Err: errors.New("nothing to copy")}
	}
	if !clipboardUnsupported() {
		if err := clipboardWrite(text); err != nil {
			return &CommandError{Command: "clipboard", Err: err}
		}
		return nil
	}

	tried := make([]string, 0, len(fallbackTools))
	for _, c := range fallbackTools {
		tried = append(tried, c.bin)
		if _, err := lookPath(c.bin); err != nil {
			continue
		}
		if err := runWithStdin(c.bin, c.args, text); err != nil {
			return &CommandError{Command: c.bin, Err: err}
		}
		return nil
	}
	return &UnsupportedPlatformError{GOOS: runtime.GOOS, Feature: "clipboard", Tried: tried}
}
