// Package output writes rendered files and reports how they differ from what
// is already on disk.
package output

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/natefinch/atomic"
)

const fileMode = 0644

// WriteIfChanged writes content to path unless the file already holds
// exactly that content. The write is atomic and parent directories are
// created as needed. changed reports whether the file was written.
func WriteIfChanged(path, content string) (changed bool, err error) {
	logger := logging.GetLogger("output")

	existing, readErr := os.ReadFile(path)
	if readErr == nil && string(existing) == content {
		logger.Debug().Str("path", path).Msg("Output unchanged, skipping write")
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "write error (%s)", path).
			WithDetail("path", path)
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "write error (%s)", path).
			WithDetail("path", path)
	}
	// atomic keeps the mode of a file it replaces but creates new ones 0600.
	if os.IsNotExist(readErr) {
		if err := os.Chmod(path, fileMode); err != nil {
			return true, errors.Wrapf(err, errors.ErrFileWrite, "write error (%s)", path).
				WithDetail("path", path)
		}
	}

	logger.Info().Str("path", path).Int("bytes", len(content)).Msg("Wrote output")
	return true, nil
}

// ReadCurrent returns the current content of path, or "" when it does not
// exist or cannot be read.
func ReadCurrent(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
