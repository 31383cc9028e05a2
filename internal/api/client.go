// Package api is a small JSON REST client for the Attio v2 API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

const DefaultBaseURL = "https://api.attio.com"

// maxErrorWidth caps raw error bodies quoted in messages, in terminal cells.
const maxErrorWidth = 200

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

const (
	defaultRetryAttempts = 3
	defaultRetryBaseMS   = 250
	defaultRetryMaxMS    = 2000
	maxRetryShift        = 20
)

// NetworkError is any failed round trip: transport failure (Status 0) or a non-2xx
// response.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Temporary reports whether retrying later could help.
func (e *NetworkError) Temporary() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func retryAttempts() int {
	enabled := strings.ToLower(strings.TrimSpace(os.Getenv("ATTIO_TUI_RETRY_ENABLED")))
	if enabled == "false" || enabled == "0" || enabled == "no" {
		return 1
	}
	attempts := envInt("ATTIO_TUI_RETRY_ATTEMPTS", defaultRetryAttempts)
	if attempts < 1 {
		return 1
	}
	return attempts
}

func parseRetryAfter(headerValue string) time.Duration {
	s := strings.TrimSpace(headerValue)
	if s == "" {
		return 0
	}
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(s); err == nil {
		d := time.Until(at)
		if d <= 0 {
			return 0
		}
		return d
	}
	return 0
}

func retryDelay(attempt int, retryAfterHeader string) time.Duration {
	if d := parseRetryAfter(retryAfterHeader); d > 0 {
		return d
	}
	if attempt < 1 {
		attempt = 1
	}
	baseMS := envInt("ATTIO_TUI_RETRY_BASE_MS", defaultRetryBaseMS)
	maxMS := envInt("ATTIO_TUI_RETRY_MAX_MS", defaultRetryMaxMS)
	if baseMS < 0 {
		baseMS = 0
	}
	if maxMS < 0 {
		maxMS = 0
	}
	if maxMS > 0 && baseMS > maxMS {
		baseMS = maxMS
	}
	shift := attempt - 1
	if shift > maxRetryShift {
		shift = maxRetryShift
	}
	delayMS := int64(baseMS) * (int64(1) << shift)
	if maxMS > 0 && delayMS > int64(maxMS) {
		delayMS = int64(maxMS)
	}
	if delayMS <= 0 {
		return 0
	}
	// Deterministic jitter keeps tests stable.
	jitterMS := int64((attempt % 97) * 37 % 97)
	if maxMS > 0 && delayMS+jitterMS > int64(maxMS) {
		return time.Duration(maxMS) * time.Millisecond
	}
	return time.Duration(delayMS+jitterMS) * time.Millisecond
}

func shouldRetryTransportError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// Treat other transport errors as retryable (EOF/reset/etc).
	return true
}

func waitRetryDelay(ctx context.Context, attempt int, retryAfterHeader string) error {
	delay := retryDelay(attempt, retryAfterHeader)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c Client) endpointFor(path string, query url.Values) (string, error) {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	p := strings.TrimPrefix(strings.TrimSpace(path), "/")
	u.Path = strings.TrimRight(u.Path, "/") + "/" + p
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// Get fetches path and decodes the JSON response into out. GETs are retried.
func (c Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, body(nil), out, true)
}

// Query POSTs a read-only query body; it is retried like a GET.
func (c Client) Query(ctx context.Context, path string, payload any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body(payload), out, true)
}

func (c Client) Post(ctx context.Context, path string, payload any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body(payload), out, false)
}

func (c Client) Patch(ctx context.Context, path string, payload any, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body(payload), out, false)
}

func (c Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, body(nil), nil, false)
}

type requestBody struct {
	payload any
	set     bool
}

func body(v any) requestBody { return requestBody{payload: v, set: v != nil} }

func (c Client) do(ctx context.Context, method, path string, query url.Values, rb requestBody, out any, retryable bool) error {
	op := method + " " + "/" + strings.TrimPrefix(path, "/")
	endpoint, err := c.endpointFor(path, query)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	var payload []byte
	if rb.set {
		payload, err = json.Marshal(rb.payload)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
	}

	attempts := 1
	if retryable {
		attempts = retryAttempts()
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		var r io.Reader
		if payload != nil {
			r = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
		if err != nil {
			return &NetworkError{Op: op, Err: err}
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if key := strings.TrimSpace(c.APIKey); key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			if attempt < attempts && shouldRetryTransportError(err) {
				if waitErr := waitRetryDelay(ctx, attempt, ""); waitErr != nil {
					return &NetworkError{Op: op, Err: waitErr}
				}
				continue
			}
			return &NetworkError{Op: op, Err: err}
		}

		b, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return &NetworkError{Op: op, Status: resp.StatusCode, Err: readErr}
		}

		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && attempt < attempts {
			if waitErr := waitRetryDelay(ctx, attempt, resp.Header.Get("Retry-After")); waitErr != nil {
				return &NetworkError{Op: op, Status: resp.StatusCode, Err: waitErr}
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &NetworkError{Op: op, Status: resp.StatusCode, Err: errors.New(errorMessage(b, resp.Status))}
		}
		if out == nil || len(bytes.TrimSpace(b)) == 0 {
			return nil
		}
		if err := json.Unmarshal(b, out); err != nil {
			return &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("invalid json response: %w", err)}
		}
		return nil
	}
	return &NetworkError{Op: op, Err: errors.New("request exhausted retries without response")}
}

// errorMessage pulls "message" out of an API error body, falling back to the raw
// text or the HTTP status line.
func errorMessage(b []byte, status string) string {
	var env struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(b, &env); err == nil && strings.TrimSpace(env.Message) != "" {
		if env.Code != "" {
			return env.Code + ": " + env.Message
		}
		return env.Message
	}
	raw := strings.TrimSpace(string(b))
	if raw == "" || strings.HasPrefix(raw, "<") {
		return status
	}
	if ansi.StringWidth(raw) > maxErrorWidth {
		raw = ansi.Truncate(raw, maxErrorWidth, "...")
	}
	return raw
}
