package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteJSON_PrettyAndCompact(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"a": 1, "b": "<x>"}

	if err := WriteJSON(&buf, v, false); err != nil {
		t.Fatalf("WriteJSON compact: %v", err)
	}
	got := buf.String()
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("expected trailing newline, got %q", got)
	}
	if strings.Contains(got, "\n ") {
		t.Fatalf("compact output should be one line, got %q", got)
	}
	if !strings.Contains(got, "<x>") {
		t.Fatalf("html should not be escaped, got %q", got)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(got)), &parsed); err != nil {
		t.Fatalf("expected valid json, got %v (%q)", err, got)
	}

	buf.Reset()
	if err := WriteJSON(&buf, v, true); err != nil {
		t.Fatalf("WriteJSON pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\": 1") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	g := Grid{
		Title:   "object-companies",
		Headers: []string{"Attribute", "Label", "Width"},
		Rows: [][]string{
			{"name", "Name", "28"},
			{"domains"},
		},
	}
	if err := WriteTable(&buf, g); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"object-companies", "ATTRIBUTE", "name", "Name", "28", "domains"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}

	if err := WriteTable(&buf, Grid{}); err == nil {
		t.Fatalf("expected error without headers")
	}
}

func TestValid(t *testing.T) {
	for _, f := range []string{"json", " TABLE "} {
		if !Valid(f) {
			t.Fatalf("%q should be valid", f)
		}
	}
	if Valid("edn") {
		t.Fatalf("edn is not supported")
	}
}
