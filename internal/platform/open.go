package platform

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

type Opener interface {
	Open(u string) error
}

// Browser opens URLs with the system's default handler.
type Browser struct{}

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open launches u. Only http and https URLs are accepted.
func (Browser) Open(u string) error {
	u = strings.TrimSpace(u)
	if u == "" {
		return &CommandError{Command: "open", Err: errors.New("missing url")}
	}
	parsed, err := url.Parse(u)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &CommandError{Command: "open", Err: fmt.Errorf("refusing to open %q", u)}
	}

	goos := runtime.GOOS
	wsl := false
	if goos == "linux" {
		wsl = isWSL()
	}
	return openFor(goos, wsl, strings.TrimSpace(os.Getenv("BROWSER")), u)
}

func openFor(goos string, wsl bool, browserEnv string, u string) error {
	switch goos {
	case "darwin":
		if err := startCommand("open", u); err != nil {
			return &CommandError{Command: "open", Err: err}
		}
		return nil
	case "windows":
		return tryCommands("open browser", [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", u},
			{"cmd", "/c", "start", "", u},
			{"powershell", "-NoProfile", "-Command", "Start-Process", u},
			{"explorer", u},
		})
	default: // linux et al
		if goos == "linux" && wsl {
			err := tryCommands("open browser (wsl)", [][]string{
				{"wslview", u},
				{"cmd.exe", "/c", "start", "", u},
				{"powershell.exe", "-NoProfile", "-Command", "Start-Process", u},
				{"explorer.exe", u},
			})
			if err == nil {
				return nil
			}
		}

		// Respect BROWSER on unix-y systems (best effort).
		if err := openViaBrowserEnv(browserEnv, u); err == nil {
			return nil
		}

		if err := startCommand("xdg-open", u); err != nil {
			return &CommandError{Command: "xdg-open", Err: err}
		}
		return nil
	}
}

func tryCommands(label string, candidates [][]string) error {
	var errs []error
	for _, args := range candidates {
		if len(args) == 0 {
			continue
		}
		err := startCommand(args[0], args[1:]...)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 1 {
		return &CommandError{Command: label, Err: errs[0]}
	}
	return &CommandError{Command: label, Err: errors.Join(errs...)}
}

func openViaBrowserEnv(raw string, u string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("BROWSER not set")
	}

	// Colon-separated list of commands; "%s" marks where the URL goes.
	var candidates [][]string
	for _, part := range strings.Split(raw, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var argv []string
		if strings.Contains(part, "%s") {
			argv = strings.Fields(strings.ReplaceAll(part, "%s", u))
		} else {
			argv = append(strings.Fields(part), u)
		}
		candidates = append(candidates, argv)
	}
	return tryCommands("open via BROWSER", candidates)
}

func isWSL() bool {
	if strings.TrimSpace(os.Getenv("WSL_INTEROP")) != "" {
		return true
	}
	if strings.TrimSpace(os.Getenv("WSL_DISTRO_NAME")) != "" {
		return true
	}

	// Heuristic: kernel release contains Microsoft.
	for _, path := range []string{"/proc/sys/kernel/osrelease", "/proc/version"} {
		if b, err := os.ReadFile(path); err == nil && strings.Contains(strings.ToLower(string(b)), "microsoft") {
			return true
		}
	}
	return false
}
