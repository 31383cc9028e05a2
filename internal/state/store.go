package state

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/attio-tui/attio-tui/internal/columns"
	"github.com/attio-tui/attio-tui/internal/debuglog"
)

// Store owns the single State plus the telemetry log and column overrides. Callers
// read snapshots and dispatch events; nothing else writes the state.
type Store struct {
	mu        sync.Mutex
	state     State
	log       *debuglog.Log
	overrides columns.Overrides
	logger    *slog.Logger
}

type StoreOptions struct {
	Initial   *State
	Log       *debuglog.Log
	Overrides columns.Overrides
	Logger    *slog.Logger
}

func NewStore(opts StoreOptions) *Store {
	st := Initial()
	if opts.Initial != nil {
		st = *opts.Initial
	}
	log := opts.Log
	if log == nil {
		log = debuglog.New(debuglog.DefaultCapacity)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	overrides := opts.Overrides
	if overrides == nil {
		overrides = columns.Overrides{}
	}
	return &Store{state: st, log: log, overrides: overrides, logger: logger}
}

// Dispatch reduces ev into the current state and returns the new snapshot and any
// effects the host must run.
func (s *Store) Dispatch(ev Event) (State, []Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(ev)
	next, effects := Reduce(s.state, ev)
	s.state = next
	s.logger.Debug("dispatch",
		"event", eventName(ev),
		"context", next.Context().Label(),
		"effects", len(effects),
	)
	return next, effects
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Columns resolves the columns for the current drill context.
func (s *Store) Columns() []columns.Resolved {
	s.mu.Lock()
	defer s.mu.Unlock()
	return columns.Resolve(s.state.Context().EntityKey(), s.overrides)
}

func (s *Store) Overrides() columns.Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(columns.Overrides, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

func (s *Store) Log() *debuglog.Log { return s.log }

// record mirrors request and action outcomes into the telemetry log. Stale
// completions are still recorded because the request did happen.
func (s *Store) record(ev Event) {
	switch ev := ev.(type) {
	case FetchSucceeded:
		detail := fmt.Sprintf("%s, %d items", ev.Context.Label(), len(ev.Page.Items))
		if ev.Page.NextCursor != "" {
			detail += ", next " + ev.Page.NextCursor
		}
		if ev.Token != s.state.Results.Token {
			detail += " (stale)"
		}
		s.log.Record(debuglog.KindRequest, fetchLabel(ev.Context.Resource().String(), ev.Append), ev.StartedAt, ev.Duration, detail, nil)
	case FetchFailed:
		s.log.Record(debuglog.KindRequest, fetchLabel(ev.Context.Resource().String(), ev.Append), ev.StartedAt, ev.Duration, ev.Context.Label(), ev.Err)
		s.logger.Warn("fetch failed", "context", ev.Context.Label(), "error", ev.Err)
	case ProbeResolved:
		detail := "no status attribute"
		if ev.Attribute != nil {
			detail = "status attribute " + ev.Attribute.Slug
		}
		s.log.Record(debuglog.KindRequest, "probe list "+ev.ListID, ev.StartedAt, ev.Duration, detail, nil)
	case ProbeFailed:
		s.log.Record(debuglog.KindRequest, "probe list "+ev.ListID, ev.StartedAt, ev.Duration, "falling back to entries", ev.Err)
		s.logger.Warn("list probe failed", "list", ev.ListID, "error", ev.Err)
	case ActionFinished:
		s.log.Record(debuglog.KindAction, firstNonEmpty(ev.Label, string(ev.ID)), ev.StartedAt, ev.Duration, ev.Detail, ev.Err)
	case ExecutePaletteSelection:
		if cmd, ok := SelectedCommand(s.state); ok {
			s.log.Record(debuglog.KindAction, "command "+cmd.ID, timeNow(), 0, cmd.Label, nil)
		}
	case ColumnsReloaded:
		if ev.Overrides != nil {
			s.overrides = ev.Overrides
		} else {
			s.overrides = columns.Overrides{}
		}
		if ev.Err != nil {
			s.logger.Warn("column overrides invalid, using defaults where needed", "error", ev.Err)
		}
		s.log.Record(debuglog.KindAction, "reload columns", timeNow(), 0, fmt.Sprintf("%d keys", len(s.overrides)), ev.Err)
	}
}

var timeNow = time.Now

func fetchLabel(resource string, appendPage bool) string {
	if appendPage {
		return "fetch " + resource + " (more)"
	}
	return "fetch " + resource
}

func eventName(ev Event) string {
	name := fmt.Sprintf("%T", ev)
	return strings.TrimPrefix(name, "state.")
}
