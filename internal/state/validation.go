package state

import (
	"net/url"
	"strings"
)

// ValidationError is bad user input. It is shown inline and never fatal.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidateWebhookURL returns the trimmed URL when it is an absolute https URL.
func ValidateWebhookURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &ValidationError{Field: "target URL", Message: "is required"}
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", &ValidationError{Field: "target URL", Message: "is not a valid URL"}
	}
	if u.Scheme != "https" {
		return "", &ValidationError{Field: "target URL", Message: "must use https"}
	}
	if u.Host == "" || strings.ContainsAny(u.Host, " \t") {
		return "", &ValidationError{Field: "target URL", Message: "must include a host"}
	}
	return s, nil
}
