package agents

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render AGENTS.md from project and shared templates"
	MsgCheckShort      = "Validate templates without rendering them"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Configuration file (default $XDG_CONFIG_HOME/agents/config.toml)"
	MsgFlagTemplate = "Shared template (default ~/.agents.md, or AGENTS_TEMPLATE)"
	MsgFlagRoot     = "Project root; skips root detection"
	MsgFlagOut      = "Output file; relative paths are under the project root"
	MsgFlagPrefix   = "File emitted before the rendered templates"
	MsgFlagStdout   = "Print to stdout instead of writing the output file"
	MsgFlagPreview  = "Print rendered as markdown (implies --stdout)"
	MsgFlagDiff     = "Show a unified diff of pending changes; do not write"
	MsgFlagClaude   = "Also write CLAUDE.md next to the output file"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagDefaults = "Print a commented configuration file with every default"
	MsgFlagInit     = "Write the commented configuration file if none exists"

	// Version output
	MsgVersionFormat = "agents version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrManDir = "man page directory %s: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
