// Package debuglog keeps a bounded history of requests and user actions for the debug
// panel and for exported snapshots.
package debuglog

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCapacity = 200
	ExportWindow    = 20
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type Kind string

const (
	KindRequest Kind = "request"
	KindAction  Kind = "action"
)

type Entry struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	Label     string        `json:"label"`
	Status    Status        `json:"status"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"-"`
	Detail    string        `json:"detail,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(struct {
		alias
		DurationMs int64 `json:"durationMs"`
	}{alias(e), e.Duration.Milliseconds()})
}

// Log is a fixed-capacity ring buffer. Once full, the oldest entry is overwritten.
type Log struct {
	mu    sync.Mutex
	buf   []Entry
	start int
	n     int
	now   func() time.Time
}

func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{buf: make([]Entry, capacity), now: time.Now}
}

func (l *Log) Cap() int { return len(l.buf) }

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}

// Append stores e, filling in ID and StartedAt when they are zero, and returns the
// stored entry.
func (l *Log) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Kind == "" {
		e.Kind = KindRequest
	}
	if e.Status == "" {
		e.Status = StatusSuccess
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e.StartedAt.IsZero() {
		e.StartedAt = l.now()
	}
	idx := (l.start + l.n) % len(l.buf)
	l.buf[idx] = e
	if l.n < len(l.buf) {
		l.n++
	} else {
		l.start = (l.start + 1) % len(l.buf)
	}
	return e
}

// Record appends an entry whose status follows err.
func (l *Log) Record(kind Kind, label string, started time.Time, d time.Duration, detail string, err error) Entry {
	e := Entry{Kind: kind, Label: label, StartedAt: started, Duration: d, Detail: detail, Status: StatusSuccess}
	if err != nil {
		e.Status = StatusError
		e.Error = err.Error()
	}
	return l.Append(e)
}

// Entries returns every retained entry, oldest first.
func (l *Log) Entries() []Entry {
	return l.Recent(0)
}

// Recent returns the newest n entries, oldest first. n <= 0 means all of them.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > l.n {
		n = l.n
	}
	out := make([]Entry, 0, n)
	for i := l.n - n; i < l.n; i++ {
		out = append(out, l.buf[(l.start+i)%len(l.buf)])
	}
	return out
}
