package sweep

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapsort/internal/classify"
	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/relocate"
)

func newClassifier(t *testing.T, watchRoot, destRoot string) *classify.Classifier {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
watch_dir = "` + watchRoot + `"
dest_dir = "` + destRoot + `"
log_dir = "` + t.TempDir() + `"

[classification]
time_source = "modification"
origin = "2025-05-01"
period_days = 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	policy, _, err := classify.PolicyFromConfig(cfg)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	relocator := relocate.New(destRoot, logging.NewNop(), nil)
	return classify.New(policy, relocator, logging.NewNop(), nil)
}

func writeImage(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestRunMovesEligibleFiles(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	mtime := time.Date(2025, time.May, 13, 9, 0, 0, 0, time.Local)

	writeImage(t, filepath.Join(watchRoot, "a.png"), mtime)
	writeImage(t, filepath.Join(watchRoot, "nested", "b.JPG"), mtime)
	writeImage(t, filepath.Join(watchRoot, "notes.txt"), mtime)

	s := New(newClassifier(t, watchRoot, destRoot), logging.NewNop(), nil)
	summary, err := s.Run(t.Context())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Moved != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 moved", summary)
	}

	bucketDir := filepath.Join(destRoot, "2025.05.11-2025.05.20")
	for _, name := range []string{"a.png", "b.JPG"} {
		if _, err := os.Stat(filepath.Join(bucketDir, name)); err != nil {
			t.Fatalf("expected %s in bucket: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(watchRoot, "notes.txt")); err != nil {
		t.Fatalf("non-matching file must stay put: %v", err)
	}
}

func TestRunSkipsDestinationSubtree(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := filepath.Join(watchRoot, "sorted")
	mtime := time.Date(2025, time.May, 13, 9, 0, 0, 0, time.Local)

	archived := filepath.Join(destRoot, "2025.05.11-2025.05.20", "old.png")
	writeImage(t, archived, mtime)

	s := New(newClassifier(t, watchRoot, destRoot), logging.NewNop(), nil)
	summary, err := s.Run(t.Context())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Moved != 0 {
		t.Fatalf("moved = %d, want 0 for already-sorted subtree", summary.Moved)
	}
	if _, err := os.Stat(archived); err != nil {
		t.Fatalf("archived file must not move: %v", err)
	}
}

func TestRunSkipsEverythingWhenRootsCoincide(t *testing.T) {
	root := t.TempDir()
	mtime := time.Date(2025, time.May, 2, 9, 0, 0, 0, time.Local)
	loose := filepath.Join(root, "shot.png")
	writeImage(t, loose, mtime)

	s := New(newClassifier(t, root, root), logging.NewNop(), nil)

	// With watch and destination roots identical, every path lies under the
	// destination root, so the sweep touches nothing; live coverage is the
	// watch loop's job.
	for _, run := range []string{"first", "second"} {
		summary, err := s.Run(t.Context())
		if err != nil {
			t.Fatalf("%s run: %v", run, err)
		}
		if summary.Moved != 0 || summary.Scanned != 0 {
			t.Fatalf("%s run summary = %+v, want nothing scanned or moved", run, summary)
		}
	}
	if _, err := os.Stat(loose); err != nil {
		t.Fatalf("loose file must stay put: %v", err)
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	mtime := time.Date(2025, time.May, 13, 9, 0, 0, 0, time.Local)

	writeImage(t, filepath.Join(watchRoot, "a.png"), mtime)
	// A dangling symlink matches the extension filter but vanishes on stat,
	// exercising the transient per-file failure path.
	if err := os.Symlink(filepath.Join(watchRoot, "nowhere"), filepath.Join(watchRoot, "broken.png")); err != nil {
		t.Fatal(err)
	}

	s := New(newClassifier(t, watchRoot, destRoot), logging.NewNop(), nil)
	summary, err := s.Run(t.Context())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Moved != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 1 moved and 1 failed", summary)
	}
}

func TestRunMissingWatchRoot(t *testing.T) {
	watchRoot := filepath.Join(t.TempDir(), "absent")
	destRoot := t.TempDir()

	s := New(newClassifier(t, watchRoot, destRoot), logging.NewNop(), nil)
	if _, err := s.Run(t.Context()); err == nil {
		t.Fatal("expected fatal error for missing watch root")
	}
}
