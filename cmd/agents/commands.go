package agents

import (
	"fmt"
	"os"

	"github.com/arthur-debert/agentsmd/internal/version"
	"github.com/arthur-debert/agentsmd/pkg/cobrax/topics"
	"github.com/arthur-debert/agentsmd/pkg/commands"
	"github.com/arthur-debert/agentsmd/pkg/commands/generate"
	"github.com/arthur-debert/agentsmd/pkg/config"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/arthur-debert/agentsmd/pkg/paths"
	"github.com/arthur-debert/agentsmd/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		stdout    bool
		preview   bool
		diff      bool
	)

	rootCmd := &cobra.Command{
		Use:     "agents [path]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			mode := generate.ModeWrite
			switch {
			case diff:
				mode = generate.ModeDiff
			case stdout || preview:
				mode = generate.ModeStdout
			}

			result, err := commands.Generate(commands.GenerateOptions{
				Path:     pathArg(args),
				Root:     stringFlag(cmd, "root"),
				Template: stringFlag(cmd, "template"),
				Config:   cfg,
				Mode:     mode,
			})
			if err != nil {
				return err
			}

			if mode == generate.ModeStdout && format != ui.FormatJSON {
				content := result.Content
				if preview {
					content, err = ui.NewMarkdownPreview(resolveFormat(cmd, format)).Render(content)
					if err != nil {
						return err
					}
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			return render(cmd, format, result)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringP("template", "t", "", MsgFlagTemplate)
	rootCmd.PersistentFlags().String("root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().String("format", "auto", MsgFlagFormat)

	// Generate flags
	rootCmd.Flags().StringP("out", "o", "", MsgFlagOut)
	rootCmd.Flags().String("prefix", "", MsgFlagPrefix)
	rootCmd.Flags().BoolVar(&stdout, "stdout", false, MsgFlagStdout)
	rootCmd.Flags().BoolVar(&preview, "preview", false, MsgFlagPreview)
	rootCmd.Flags().BoolVar(&diff, "diff", false, MsgFlagDiff)
	rootCmd.Flags().Bool("claude", false, MsgFlagClaude)
	rootCmd.MarkFlagsMutuallyExclusive("stdout", "diff")
	rootCmd.MarkFlagsMutuallyExclusive("preview", "diff")

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Initialize topic-based help system from the embedded topics
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewMarkdownRenderer(ui.FormatAuto.Resolve(os.Stdout)),
	}
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// loadConfig loads the configuration with the flags that override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file := stringFlag(cmd, "config")
	if file == "" {
		file = paths.UserConfigFile()
	}

	overrides := map[string]interface{}{}
	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		overrides["output"] = f.Value.String()
	}
	if f := cmd.Flags().Lookup("prefix"); f != nil && f.Changed {
		overrides["prefix"] = f.Value.String()
	}
	if f := cmd.Flags().Lookup("claude"); f != nil && f.Changed {
		claude, _ := cmd.Flags().GetBool("claude")
		overrides["claude"] = claude
	}

	cfg, err := config.LoadWithOverrides(file, overrides)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("config", file).Interface("overrides", overrides).Msg("Configuration loaded")
	return cfg, nil
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func outputFormat(cmd *cobra.Command) (ui.Format, error) {
	return ui.ParseFormat(stringFlag(cmd, "format"))
}

// resolveFormat turns FormatAuto into a concrete format for the command's
// output stream.
func resolveFormat(cmd *cobra.Command, format ui.Format) ui.Format {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return format.Resolve(f)
	}
	if format == ui.FormatAuto {
		return ui.FormatText
	}
	return format
}

// render prints a command result in the requested format.
func render(cmd *cobra.Command, format ui.Format, result interface{}) error {
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check [path]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			report, err := commands.Check(commands.CheckOptions{
				Path:     pathArg(args),
				Root:     stringFlag(cmd, "root"),
				Template: stringFlag(cmd, "template"),
				Config:   cfg,
			})
			if err != nil {
				return err
			}
			return render(cmd, format, report)
		},
	}
}

func newConfigCmd() *cobra.Command {
	var initFile, defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			if initFile || defaults {
				result, err := commands.GenConfig(commands.GenConfigOptions{
					Path:  stringFlag(cmd, "config"),
					Write: initFile,
				})
				if err != nil {
					return err
				}
				if defaults && !initFile && format != ui.FormatJSON {
					_, err = fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
					return err
				}
				return render(cmd, format, result)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if format == ui.FormatJSON {
				return render(cmd, format, cfg)
			}
			content, err := config.ToTOML(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, MsgFlagInit)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.MarkFlagsMutuallyExclusive("init", "defaults")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf(MsgErrManDir, dir, err)
			}
			header := &doc.GenManHeader{
				Title:   "AGENTS",
				Section: "1",
				Source:  "agents " + version.Version,
				Manual:  "agents manual",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
}
