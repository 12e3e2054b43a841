// Package preflight verifies the filesystem prerequisites before the daemon
// starts watching. Failures here are fatal setup errors: the process reports
// them and never begins observing the watch root.
package preflight

import (
	"fmt"
	"os"

	"snapsort/internal/config"
	"snapsort/internal/services"
)

// Result captures one check outcome for display.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckWatchRoot verifies that the watch root exists, is a directory, and is
// accessible for reading and traversal.
func CheckWatchRoot(path string) Result {
	const name = "Watch root"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDestRoot verifies that the destination root exists or can be created.
func CheckDestRoot(path string) Result {
	const name = "Destination root"
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create: %v)", path, err)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Run evaluates every check for cfg and returns a configuration error naming
// the first failure.
func Run(cfg *config.Config) ([]Result, error) {
	results := []Result{
		CheckWatchRoot(cfg.Paths.WatchDir),
		CheckDestRoot(cfg.Paths.DestDir),
	}
	for _, res := range results {
		if !res.Passed {
			return results, services.Wrap(services.ErrConfiguration, "preflight", res.Name, res.Detail, nil)
		}
	}
	return results, nil
}
