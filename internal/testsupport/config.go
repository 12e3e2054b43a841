// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"snapsort/internal/classify"
	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/relocate"
)

// LoadConfig writes a minimal TOML config for the given roots and loads it
// through the production path, so normalization and validation both run.
// extra lines are appended verbatim to the [classification] section.
func LoadConfig(t *testing.T, watchDir, destDir string, extra ...string) *config.Config {
	t.Helper()

	content := `
[paths]
watch_dir = "` + watchDir + `"
dest_dir = "` + destDir + `"
log_dir = "` + t.TempDir() + `"

[classification]
time_source = "modification"
origin = "2025-05-01"
period_days = 10
settle_delay_ms = 10
`
	for _, line := range extra {
		content += line + "\n"
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}
	return cfg
}

// NewClassifier builds a classifier over cfg with a no-op logger and no
// notifier, matching how most tests exercise the pipeline.
func NewClassifier(t *testing.T, cfg *config.Config) *classify.Classifier {
	t.Helper()
	policy, _, err := classify.PolicyFromConfig(cfg)
	if err != nil {
		t.Fatalf("build policy: %v", err)
	}
	relocator := relocate.New(policy.DestRoot, logging.NewNop(), nil)
	return classify.New(policy, relocator, logging.NewNop(), nil)
}
