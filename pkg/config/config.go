package config

import (
	"github.com/arthur-debert/agentsmd/pkg/paths"
)

// Config is the effective agents configuration.
type Config struct {
	// Template is the shared template, rendered after the local one
	Template string `koanf:"template" toml:"template"`

	// LocalTemplate is the project-local template, relative to the root
	LocalTemplate string `koanf:"local_template" toml:"local_template"`

	// Output is the generated file, relative to the root unless absolute
	Output string `koanf:"output" toml:"output"`

	// Claude enables writing a copy of the output as ClaudeOutput
	Claude       bool   `koanf:"claude" toml:"claude"`
	ClaudeOutput string `koanf:"claude_output" toml:"claude_output"`

	// Prefix names a file emitted before the rendered templates
	Prefix string `koanf:"prefix" toml:"prefix"`

	Root      Root                `koanf:"root" toml:"root"`
	Languages map[string]Language `koanf:"languages" toml:"languages,omitempty"`
}

// Root configures project root detection.
type Root struct {
	Markers         []string `koanf:"markers" toml:"markers"`
	FallbackMarkers []string `koanf:"fallback_markers" toml:"fallback_markers"`
}

// Language adds or replaces a language known to lang().
type Language struct {
	Extensions []string `koanf:"extensions" toml:"extensions"`
}

// Default returns the built-in configuration, without reading the user
// config file or the environment.
func Default() *Config {
	return &Config{
		Template:      paths.DefaultSharedTemplate,
		LocalTemplate: paths.DefaultLocalTemplate,
		Output:        paths.DefaultOutput,
		ClaudeOutput:  paths.DefaultClaudeOutput,
		Root: Root{
			Markers:         []string{".git", ".hg", ".svn"},
			FallbackMarkers: []string{"Cargo.lock"},
		},
	}
}

// LanguageExtensions flattens Languages for the language registry.
func (c *Config) LanguageExtensions() map[string][]string {
	if len(c.Languages) == 0 {
		return nil
	}
	out := make(map[string][]string, len(c.Languages))
	for name, lang := range c.Languages {
		out[name] = lang.Extensions
	}
	return out
}
