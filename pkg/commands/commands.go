// Package commands provides high-level command implementations for agents.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the template engine.
//
// Each command is implemented in its own subdirectory:
//   - generate/  - Generate command (render, write, diff)
//   - check/     - Check command (parse-only validation)
//   - genconfig/ - GenConfig command (default configuration file)
//   - internal/  - Shared project and template resolution
//
// This file re-exports the command functions for the CLI.
package commands

import (
	"github.com/arthur-debert/agentsmd/pkg/commands/check"
	"github.com/arthur-debert/agentsmd/pkg/commands/genconfig"
	"github.com/arthur-debert/agentsmd/pkg/commands/generate"
)

// GenerateOptions configures Generate.
type GenerateOptions = generate.Options

// Generate renders the templates and writes, diffs or returns the result.
func Generate(opts GenerateOptions) (*generate.Result, error) {
	return generate.Run(opts)
}

// CheckOptions configures Check.
type CheckOptions = check.Options

// Check parses the templates without evaluating them.
func Check(opts CheckOptions) (*check.Report, error) {
	return check.Run(opts)
}

// GenConfigOptions configures GenConfig.
type GenConfigOptions = genconfig.Options

// GenConfig outputs or writes the default configuration.
func GenConfig(opts GenConfigOptions) (*genconfig.Result, error) {
	return genconfig.GenConfig(opts)
}
