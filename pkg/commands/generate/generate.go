// Package generate renders the project and shared templates into AGENTS.md.
package generate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/commands/internal"
	"github.com/arthur-debert/agentsmd/pkg/config"
	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/arthur-debert/agentsmd/pkg/matchers"
	"github.com/arthur-debert/agentsmd/pkg/notes"
	"github.com/arthur-debert/agentsmd/pkg/output"
	"github.com/arthur-debert/agentsmd/pkg/output/styles"
	"github.com/arthur-debert/agentsmd/pkg/paths"
)

// Mode selects what happens to the rendered content.
type Mode int

const (
	// ModeWrite writes the output files when their content changed
	ModeWrite Mode = iota
	// ModeStdout only returns the content
	ModeStdout
	// ModeDiff compares the content with the current output file
	ModeDiff
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeStdout:
		return "stdout"
	case ModeDiff:
		return "diff"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Options holds options for the generate command
type Options struct {
	Path     string
	Root     string
	Template string
	Config   *config.Config
	Mode     Mode
	// Env answers env() guards; the process environment when nil
	Env matchers.Env
}

// Result describes a generate run.
type Result struct {
	Mode      Mode     `json:"mode"`
	Root      string   `json:"root"`
	Templates []string `json:"templates"`
	Output    string   `json:"output"`
	Content   string   `json:"content"`
	Written   []string `json:"written,omitempty"`
	Unchanged []string `json:"unchanged,omitempty"`
	Diff      string   `json:"diff,omitempty"`
}

// Run renders the local template followed by the shared one and then
// writes, diffs or returns the result according to opts.Mode.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.generate")
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	proj, err := internal.ResolveProject(internal.ProjectOptions{
		Path:     opts.Path,
		Root:     opts.Root,
		Template: opts.Template,
		Config:   opts.Config,
	})
	if err != nil {
		return nil, err
	}
	cfg := proj.Config

	prefix, err := readPrefix(cfg.Prefix)
	if err != nil {
		return nil, err
	}

	templates := proj.Templates()
	content, err := Combine(templates, prefix, proj.Root, proj.MatcherOptions(opts.Env)...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Mode:      opts.Mode,
		Root:      proj.Root,
		Templates: templates,
		Output:    paths.OutputPath(proj.Root, cfg.Output),
		Content:   content,
	}
	logger.Debug().
		Str("root", result.Root).
		Strs("templates", templates).
		Str("mode", opts.Mode.String()).
		Msg("Rendered templates")

	switch opts.Mode {
	case ModeStdout:
		return result, nil

	case ModeDiff:
		result.Diff = output.UnifiedDiff(output.ReadCurrent(result.Output), content, filepath.Base(result.Output))
		return result, nil

	default:
		targets := []string{result.Output}
		if cfg.Claude {
			targets = append(targets, paths.ClaudePath(result.Output, cfg.ClaudeOutput))
		}
		for _, target := range targets {
			changed, err := output.WriteIfChanged(target, content)
			if err != nil {
				return result, err
			}
			if changed {
				result.Written = append(result.Written, target)
			} else {
				result.Unchanged = append(result.Unchanged, target)
			}
		}
		return result, nil
	}
}

// Combine renders each template in order against root and concatenates the
// results after prefix.
func Combine(templates []string, prefix, root string, opts ...matchers.Option) (string, error) {
	ev := matchers.New(root, opts...)

	var b strings.Builder
	b.WriteString(prefix)
	for _, path := range templates {
		tpl, err := internal.ReadTemplate(path)
		if err != nil {
			return "", err
		}
		rendered, err := tpl.RenderWith(ev, "")
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.WithDetail("path", path)
			}
			return "", err
		}
		b.WriteString(rendered)
	}
	return b.String(), nil
}

// readPrefix returns the prefix file's content without maintainer notes.
func readPrefix(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	path = paths.ExpandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRead, "prefix read error (%s)", path).
			WithDetail("path", path)
	}
	return notes.Strip(string(data)), nil
}

// Display implements display.Displayable
func (r *Result) Display(styled bool) string {
	render := func(style, text string) string {
		if styled {
			return styles.Render(style, text)
		}
		return text
	}

	switch r.Mode {
	case ModeStdout:
		return r.Content

	case ModeDiff:
		if r.Diff == "" {
			return render("NoChanges", output.NoChanges)
		}
		var b strings.Builder
		// Writing to a strings.Builder cannot fail.
		_ = output.PrintDiff(&b, r.Diff, styled)
		return b.String()

	default:
		var lines []string
		for _, path := range r.Written {
			lines = append(lines, render("Success", "Wrote")+" "+render("FilePath", path))
		}
		for _, path := range r.Unchanged {
			lines = append(lines, render("Muted", "Unchanged")+" "+render("FilePath", path))
		}
		return strings.Join(lines, "\n")
	}
}
