// Package paths provides centralized path handling for agents.
//
// It resolves where templates are read from and where generated files are
// written, and where agents keeps its own files following the XDG Base
// Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/agents/config.toml (user configuration)
//   - State: $XDG_STATE_HOME/agents/agents.log (log file)
//
// # Template and output resolution
//
// The shared template comes from, in order of precedence, the --template
// flag, the configured `template` value (which AGENTS_TEMPLATE overrides) and
// finally ~/.agents.md. The project-local template always lives at the
// project root. Relative output paths are taken relative to the root.
//
// # Usage
//
//	shared := paths.SharedTemplatePath(flagValue, cfg.Template)
//	local := paths.LocalTemplatePath(root, cfg.LocalTemplate)
//	if !paths.SamePath(shared, local) {
//	    // render both
//	}
package paths
