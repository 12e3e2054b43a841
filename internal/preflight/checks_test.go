package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"snapsort/internal/services"
	"snapsort/internal/testsupport"
)

func TestCheckWatchRootMissing(t *testing.T) {
	res := CheckWatchRoot(filepath.Join(t.TempDir(), "absent"))
	if res.Passed {
		t.Fatal("missing watch root must fail")
	}
}

func TestCheckWatchRootNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := CheckWatchRoot(file)
	if res.Passed {
		t.Fatal("regular file must fail the watch root check")
	}
}

func TestCheckDestRootCreatesMissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "sorted")
	res := CheckDestRoot(dest)
	if !res.Passed {
		t.Fatalf("check failed: %s", res.Detail)
	}
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		t.Fatalf("destination was not created: %v", err)
	}
}

func TestRunReportsConfigurationError(t *testing.T) {
	cfg := testsupport.LoadConfig(t, filepath.Join(t.TempDir(), "absent"), t.TempDir())
	_, err := Run(cfg)
	if err == nil {
		t.Fatal("expected error for missing watch root")
	}
	if !services.IsFatal(err) {
		t.Fatalf("preflight failures must be fatal, got %v", err)
	}
}

func TestRunPasses(t *testing.T) {
	cfg := testsupport.LoadConfig(t, t.TempDir(), t.TempDir())
	results, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, res := range results {
		if !res.Passed {
			t.Fatalf("check %s failed: %s", res.Name, res.Detail)
		}
	}
}
