// Package project locates the root of the project a path belongs to.
package project

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/logging"
)

// FindRoot walks up from start (or its parent, when start is a file) and
// returns the nearest directory holding one of the marker directories. When
// there is none, the nearest directory holding one of the fallback marker
// files is returned instead.
func FindRoot(start string, markers, fallback []string) (string, error) {
	logger := logging.GetLogger("project")

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRootNotFound, "invalid path %s", start).
			WithDetail("path", start)
	}
	dir := filepath.Clean(abs)
	if info, err := os.Stat(dir); err == nil && info.Mode().IsRegular() {
		dir = filepath.Dir(dir)
	}

	candidate := ""
	for {
		if hasEntry(dir, markers, true) {
			logger.Debug().Str("root", dir).Msg("Found project root")
			return dir, nil
		}
		if candidate == "" && hasEntry(dir, fallback, false) {
			candidate = dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if candidate != "" {
		logger.Debug().Str("root", candidate).Msg("Found project root by fallback marker")
		return candidate, nil
	}

	return "", errors.New(errors.ErrRootNotFound, "project root not found").
		WithDetail("path", abs)
}

// hasEntry reports whether dir contains one of names, as a directory when
// wantDir is set and as a regular file otherwise.
func hasEntry(dir string, names []string, wantDir bool) bool {
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if wantDir && info.IsDir() || !wantDir && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}
