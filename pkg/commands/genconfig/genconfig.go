// Package genconfig outputs or writes the default configuration file.
package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentsmd/pkg/config"
	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/arthur-debert/agentsmd/pkg/output/styles"
	"github.com/arthur-debert/agentsmd/pkg/paths"
)

// Options holds options for the gen-config command
type Options struct {
	// Path is the file to write; the user config file when empty
	Path  string
	Write bool
}

// Result holds the generated configuration and the files written
type Result struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
	Skipped       []string `json:"skipped,omitempty"`
}

// GenConfig outputs or writes the default configuration
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	result := &Result{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	// If not writing, just return the content
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	target := opts.Path
	if target == "" {
		target = paths.UserConfigFile()
	}

	// Never overwrite an existing config
	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		result.Skipped = append(result.Skipped, target)
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory %s", filepath.Dir(target))
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}

// Display implements display.Displayable
func (r *Result) Display(styled bool) string {
	render := func(style, text string) string {
		if styled {
			return styles.Render(style, text)
		}
		return text
	}

	if len(r.FilesWritten) == 0 && len(r.Skipped) == 0 {
		return r.ConfigContent
	}
	var out string
	for _, path := range r.FilesWritten {
		out += render("Success", "Wrote") + " " + render("FilePath", path) + "\n"
	}
	for _, path := range r.Skipped {
		out += render("Warning", "Exists, not overwritten:") + " " + render("FilePath", path) + "\n"
	}
	return out
}
