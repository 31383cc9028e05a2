package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteJSON_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "snap.json")
	if err := (Files{}).WriteJSON(path, map[string]any{"ok": true}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["ok"] != true {
		t.Fatalf("got %v", got)
	}
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if fi.Mode().Perm() != 0o600 {
			t.Fatalf("expected 0600 perms, got %o", fi.Mode().Perm())
		}
	}
}

func TestAppendLine_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "exports.log")
	f := Files{}
	if err := f.AppendLine(path, "one"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	if err := f.AppendLine(path, "two\n"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "one\ntwo\n" {
		t.Fatalf("content = %q", b)
	}
}

func TestFiles_Validations(t *testing.T) {
	if err := (Files{}).WriteJSON(" ", 1); err == nil {
		t.Fatalf("expected error for missing path")
	}
	if err := (Files{}).AppendLine("", "x"); err == nil {
		t.Fatalf("expected error for missing path")
	}
	if err := (Files{}).WriteJSON(filepath.Join(t.TempDir(), "x.json"), func() {}); err == nil {
		t.Fatalf("expected marshal error")
	}
}
