// Package check validates templates without evaluating their guards.
package check

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/commands/internal"
	"github.com/arthur-debert/agentsmd/pkg/config"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/arthur-debert/agentsmd/pkg/output/styles"
)

// Options holds options for the check command
type Options struct {
	Path     string
	Root     string
	Template string
	Config   *config.Config
}

// TemplateReport summarizes one template.
type TemplateReport struct {
	Path         string   `json:"path"`
	Conditionals int      `json:"conditionals"`
	MaxDepth     int      `json:"maxDepth"`
	Matchers     []string `json:"matchers"`
}

// Report is the result of the check command.
type Report struct {
	Root      string           `json:"root"`
	Templates []TemplateReport `json:"templates"`
}

// Run parses the templates a generate run would use and reports their
// structure. The first parse error is returned.
func Run(opts Options) (*Report, error) {
	logger := logging.GetLogger("commands.check")

	proj, err := internal.ResolveProject(internal.ProjectOptions{
		Path:     opts.Path,
		Root:     opts.Root,
		Template: opts.Template,
		Config:   opts.Config,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{Root: proj.Root, Templates: []TemplateReport{}}
	for _, path := range proj.Templates() {
		tpl, err := internal.ReadTemplate(path)
		if err != nil {
			return nil, err
		}

		stats := tpl.Stats()
		tr := TemplateReport{
			Path:         path,
			Conditionals: stats.Conditionals,
			MaxDepth:     stats.MaxDepth,
			Matchers:     make([]string, 0, len(stats.Matchers)),
		}
		for _, m := range stats.Matchers {
			tr.Matchers = append(tr.Matchers, m.String())
		}
		logger.Debug().
			Str("path", path).
			Int("conditionals", tr.Conditionals).
			Int("maxDepth", tr.MaxDepth).
			Msg("Template is valid")
		report.Templates = append(report.Templates, tr)
	}

	return report, nil
}

// Display implements display.Displayable
func (r *Report) Display(styled bool) string {
	render := func(style, text string) string {
		if styled {
			return styles.Render(style, text)
		}
		return text
	}

	if len(r.Templates) == 0 {
		return render("Muted", "No templates found")
	}

	var b strings.Builder
	for i, t := range r.Templates {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", render("Success", "ok"), render("FilePath", t.Path))
		fmt.Fprintf(&b, "  conditionals: %d, max depth: %d\n", t.Conditionals, t.MaxDepth)
		if len(t.Matchers) > 0 {
			fmt.Fprintf(&b, "  matchers: %s\n", strings.Join(t.Matchers, ", "))
		}
	}
	return b.String()
}
