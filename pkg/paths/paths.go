package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "agents"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "agents.log"

	// DefaultSharedTemplate is used when neither flag nor configuration
	// names a shared template
	DefaultSharedTemplate = "~/.agents.md"

	// DefaultLocalTemplate is the project-local template name
	DefaultLocalTemplate = ".agents.md"

	// DefaultOutput is the generated file name
	DefaultOutput = "AGENTS.md"

	// DefaultClaudeOutput is the name of the CLAUDE.md copy
	DefaultClaudeOutput = "CLAUDE.md"
)

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome expands a leading ~ in path to the user's home directory.
func ExpandHome(path string) string {
	return expandHome(path)
}

// SharedTemplatePath resolves the shared template: the flag value wins over
// the configured value, which wins over ~/.agents.md.
func SharedTemplatePath(flag, configured string) string {
	switch {
	case flag != "":
		return expandHome(flag)
	case configured != "":
		return expandHome(configured)
	default:
		return expandHome(DefaultSharedTemplate)
	}
}

// LocalTemplatePath returns the project-local template under root.
func LocalTemplatePath(root, name string) string {
	if name == "" {
		name = DefaultLocalTemplate
	}
	return filepath.Join(root, name)
}

// OutputPath resolves out against root. Absolute (or ~) paths are kept.
func OutputPath(root, out string) string {
	if out == "" {
		out = DefaultOutput
	}
	out = expandHome(out)
	if filepath.IsAbs(out) {
		return filepath.Clean(out)
	}
	return filepath.Join(root, out)
}

// ClaudePath returns the CLAUDE.md copy that sits next to outputPath.
func ClaudePath(outputPath, name string) string {
	if name == "" {
		name = DefaultClaudeOutput
	}
	return filepath.Join(filepath.Dir(outputPath), name)
}

// SamePath reports whether a and b name the same file. Both are resolved
// through symlinks when they exist; otherwise their absolute cleaned forms
// are compared.
func SamePath(a, b string) bool {
	return canonical(a) == canonical(b)
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// ConfigDir returns the XDG config directory for agents
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// UserConfigFile returns the user configuration file location
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFile returns the log file location
func LogFile() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
