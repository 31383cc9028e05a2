package debuglog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestLog_RingBufferKeepsNewest(t *testing.T) {
	l := New(3)
	for i := 0; i < 5; i++ {
		l.Append(Entry{Label: fmt.Sprintf("req-%d", i)})
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	got := l.Entries()
	want := []string{"req-2", "req-3", "req-4"}
	for i, e := range got {
		if e.Label != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.Label, want[i])
		}
	}
	if r := l.Recent(2); len(r) != 2 || r[0].Label != "req-3" || r[1].Label != "req-4" {
		t.Fatalf("Recent(2) = %+v", r)
	}
	if r := l.Recent(10); len(r) != 3 {
		t.Fatalf("Recent(10) len = %d", len(r))
	}
}

func TestLog_DefaultsAndRecord(t *testing.T) {
	l := New(0)
	if l.Cap() != DefaultCapacity {
		t.Fatalf("Cap = %d", l.Cap())
	}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	e := l.Append(Entry{Label: "fetch notes"})
	if e.ID == "" || e.Kind != KindRequest || e.Status != StatusSuccess || !e.StartedAt.Equal(fixed) {
		t.Fatalf("defaults not applied: %+v", e)
	}

	e = l.Record(KindAction, "copy id", fixed, 15*time.Millisecond, "rec_1", errors.New("no clipboard"))
	if e.Status != StatusError || e.Error != "no clipboard" || e.Kind != KindAction {
		t.Fatalf("Record = %+v", e)
	}
}

func TestEntry_JSONUsesMilliseconds(t *testing.T) {
	e := Entry{ID: "x", Kind: KindRequest, Label: "l", Status: StatusSuccess, Duration: 1500 * time.Millisecond}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"durationMs":1500`) {
		t.Fatalf("json = %s", b)
	}
	if strings.Contains(string(b), `"Duration"`) {
		t.Fatalf("raw duration leaked: %s", b)
	}
}
