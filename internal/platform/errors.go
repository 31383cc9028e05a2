// Package platform wraps the OS integrations the TUI uses: the clipboard and the
// default browser.
package platform

import (
	"fmt"
	"strings"
)

// UnsupportedPlatformError means no usable integration exists on this system.
type UnsupportedPlatformError struct {
	GOOS    string
	Feature string
	Tried   []string
}

func (e *UnsupportedPlatformError) Error() string {
	msg := fmt.Sprintf("%s is not supported on %s", e.Feature, e.GOOS)
	if len(e.Tried) > 0 {
		msg += " (tried " + strings.Join(e.Tried, ", ") + ")"
	}
	return msg
}

// CommandError is a helper process that could not be started or exited non-zero.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
