// Package filex handles local temporary files of a run: unique names,
// guaranteed best-effort removal and the free-space preflight probe.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates dir (and parents) if missing and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// TempPath returns a unique path inside dir for a scratch file with the
// given suffix. The file is not created.
func TempPath(dir string, suffix string) string {
	return filepath.Join(dir, uuid.NewString()+suffix)
}

// RemoveQuiet deletes path, ignoring not-exist. Intended for deferred
// cleanup where the file may never have been created.
func RemoveQuiet(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
