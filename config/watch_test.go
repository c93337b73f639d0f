package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "board.yaml")
	if err := os.WriteFile(target, []byte("log:\n  debug: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("event for %q, want %q", got, target)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel should be closed")
	}

	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("watching a missing directory should fail")
	}
}

func TestFileKinds(t *testing.T) {
	cases := map[string][2]bool{
		"board.yaml":       {true, false},
		"BOARD.YML":        {true, false},
		"categorize.tengo": {false, true},
		"readme.md":        {false, false},
	}
	for name, want := range cases {
		if IsConfigFile(name) != want[0] || IsScriptFile(name) != want[1] {
			t.Fatalf("%s: config=%v script=%v", name, IsConfigFile(name), IsScriptFile(name))
		}
	}
}
