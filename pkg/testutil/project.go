package testutil

import (
	"path/filepath"
	"testing"
)

// TempProject creates a temporary project root containing a .git directory
// and the given empty files, and returns its path. Symlinks in the temp dir
// path are resolved so callers can compare paths returned by root detection.
func TempProject(t *testing.T, files ...string) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	CreateDir(t, root, ".git")
	Touch(t, root, files...)

	return root
}
