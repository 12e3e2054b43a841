//go:build !linux

package preflight

import "os"

func checkAccess(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
