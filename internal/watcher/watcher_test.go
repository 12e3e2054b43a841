package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapsort/internal/logging"
	"snapsort/internal/testsupport"
)

const waitTimeout = 5 * time.Second

func startedWatcher(t *testing.T, watchRoot, destRoot string) *Watcher {
	t.Helper()
	cfg := testsupport.LoadConfig(t, watchRoot, destRoot)
	w := New(testsupport.NewClassifier(t, cfg), logging.NewNop())
	if err := w.Start(t.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherClassifiesCreatedFile(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	startedWatcher(t, watchRoot, destRoot)

	path := filepath.Join(watchRoot, "shot.png")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2025, time.May, 13, 9, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	final := filepath.Join(destRoot, "2025.05.11-2025.05.20", "shot.png")
	moved := testsupport.WaitFor(t, waitTimeout, func() bool {
		_, err := os.Stat(final)
		return err == nil
	})
	if !moved {
		t.Fatalf("file never arrived at %s", final)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("source must be gone, stat err = %v", err)
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	startedWatcher(t, watchRoot, destRoot)

	path := filepath.Join(watchRoot, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("non-matching file must stay put: %v", err)
	}
	entries, err := os.ReadDir(destRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("no bucket should exist, found %v", entries)
	}
}

func TestWatcherIgnoresDirectories(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	startedWatcher(t, watchRoot, destRoot)

	dir := filepath.Join(watchRoot, "album.png")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory must stay put: %v", err)
	}
}

func TestWatcherSurvivesVanishedFile(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	startedWatcher(t, watchRoot, destRoot)

	// Create and delete before the settle delay elapses.
	doomed := filepath.Join(watchRoot, "doomed.png")
	if err := os.WriteFile(doomed, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(doomed); err != nil {
		t.Fatal(err)
	}

	// The loop must still classify subsequent files.
	path := filepath.Join(watchRoot, "next.png")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2025, time.May, 2, 9, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	final := filepath.Join(destRoot, "2025.05.01-2025.05.10", "next.png")
	if !testsupport.WaitFor(t, waitTimeout, func() bool {
		_, err := os.Stat(final)
		return err == nil
	}) {
		t.Fatalf("loop stopped classifying after a vanished file")
	}
}

func TestWatcherLifecycle(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	cfg := testsupport.LoadConfig(t, watchRoot, destRoot)
	w := New(testsupport.NewClassifier(t, cfg), logging.NewNop())

	if got := w.State(); got != StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
	if err := w.Start(t.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := w.State(); got != StateRunning {
		t.Fatalf("state = %s, want running", got)
	}
	if err := w.Start(t.Context()); err == nil {
		t.Fatal("second start must fail")
	}

	w.Stop()
	if got := w.State(); got != StateStopped {
		t.Fatalf("state = %s, want stopped", got)
	}
	w.Stop() // idempotent

	if err := w.Start(t.Context()); err == nil {
		t.Fatal("stopped is terminal; restart must fail")
	}
}

func TestWatcherStartMissingRoot(t *testing.T) {
	cfg := testsupport.LoadConfig(t, filepath.Join(t.TempDir(), "absent"), t.TempDir())
	w := New(testsupport.NewClassifier(t, cfg), logging.NewNop())
	if err := w.Start(t.Context()); err == nil {
		t.Fatal("expected error for missing watch root")
	}
}
