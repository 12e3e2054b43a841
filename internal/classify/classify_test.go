package classify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/relocate"
)

func newTestPolicy(t *testing.T, watchRoot, destRoot string) Policy {
	t.Helper()
	cfg := loadConfig(t, watchRoot, destRoot)
	policy, downgraded, err := PolicyFromConfig(cfg)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if downgraded {
		t.Fatal("modification source must not downgrade")
	}
	return policy
}

// loadConfig round-trips the settings through config.Load so normalize runs
// (origin parse, extension canonicalization) the same way production startup
// does.
func loadConfig(t *testing.T, watchRoot, destRoot string) *config.Config {
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
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return loaded
}

func TestClassifyMovesFileIntoDatedBucket(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	policy := newTestPolicy(t, watchRoot, destRoot)

	src := filepath.Join(watchRoot, "shot.png")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2025, time.May, 13, 10, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	relocator := relocate.New(destRoot, logging.NewNop(), nil)
	classifier := New(policy, relocator, logging.NewNop(), nil)

	final, err := classifier.Classify(t.Context(), src)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	want := filepath.Join(destRoot, "2025.05.11-2025.05.20", "shot.png")
	if final != want {
		t.Fatalf("final = %q, want %q", final, want)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source must be gone, stat err = %v", err)
	}
}

func TestClassifyVanishedFile(t *testing.T) {
	watchRoot := t.TempDir()
	destRoot := t.TempDir()
	policy := newTestPolicy(t, watchRoot, destRoot)

	relocator := relocate.New(destRoot, logging.NewNop(), nil)
	classifier := New(policy, relocator, logging.NewNop(), nil)

	if _, err := classifier.Classify(t.Context(), filepath.Join(watchRoot, "gone.png")); err == nil {
		t.Fatal("expected error for vanished file")
	}
}

func TestMatchesExtension(t *testing.T) {
	policy := Policy{Extensions: map[string]struct{}{"png": {}, "jpg": {}}}
	cases := []struct {
		name string
		want bool
	}{
		{"shot.png", true},
		{"SHOT.PNG", true},
		{"photo.JPG", true},
		{"notes.txt", false},
		{"noext", false},
		{"archive.png.bak", false},
		// The extension must be a dot-delimited suffix: a bare name equal to
		// an extension or a longer suffix merely ending in one never matches.
		{"png", false},
		{"archive.mypng", false},
	}
	for _, tc := range cases {
		if got := policy.MatchesExtension(tc.name); got != tc.want {
			t.Fatalf("MatchesExtension(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPolicyFromConfigRejectsUnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Classification.TimeSource = "atime"
	if _, _, err := PolicyFromConfig(&cfg); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
