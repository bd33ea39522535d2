// Package internal holds the project resolution shared by the commands.
package internal

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentsmd/pkg/config"
	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/languages"
	"github.com/arthur-debert/agentsmd/pkg/matchers"
	"github.com/arthur-debert/agentsmd/pkg/paths"
	"github.com/arthur-debert/agentsmd/pkg/project"
	"github.com/arthur-debert/agentsmd/pkg/template"
)

// ProjectOptions selects the project and templates a command works on.
type ProjectOptions struct {
	// Path is where root detection starts; the working directory when empty
	Path string
	// Root skips detection when set
	Root string
	// Template overrides the configured shared template
	Template string
	Config   *config.Config
}

// Project is a resolved project root with the templates that apply to it.
type Project struct {
	Root   string
	Local  string
	Shared string
	Config *config.Config
}

// ResolveProject finds the project root and the template paths.
func ResolveProject(opts ProjectOptions) (*Project, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	root := opts.Root
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRootNotFound, "invalid project root %s", root).
				WithDetail("path", root)
		}
		root = abs
	} else {
		start := opts.Path
		if start == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrRootNotFound, "cannot determine working directory")
			}
			start = wd
		}
		found, err := project.FindRoot(start, cfg.Root.Markers, cfg.Root.FallbackMarkers)
		if err != nil {
			return nil, err
		}
		root = found
	}

	return &Project{
		Root:   root,
		Local:  paths.LocalTemplatePath(root, cfg.LocalTemplate),
		Shared: paths.SharedTemplatePath(opts.Template, cfg.Template),
		Config: cfg,
	}, nil
}

// Templates returns the templates to process, local first. The local
// template is skipped when it does not exist, and the shared one when it is
// the same file as the local one.
func (p *Project) Templates() []string {
	var out []string
	if info, err := os.Stat(p.Local); err == nil && !info.IsDir() {
		out = append(out, p.Local)
	}
	if !paths.SamePath(p.Local, p.Shared) {
		out = append(out, p.Shared)
	}
	return out
}

// MatcherOptions configures guard evaluation for the project.
func (p *Project) MatcherOptions(env matchers.Env) []matchers.Option {
	opts := []matchers.Option{
		matchers.WithLanguages(languages.WithOverrides(languages.Default(), p.Config.LanguageExtensions())),
	}
	if env != nil {
		opts = append(opts, matchers.WithEnv(env))
	}
	return opts
}

// ReadTemplate reads and parses the template at path.
func ReadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRead, "template read error (%s)", path).
			WithDetail("path", path)
	}
	tpl, err := template.Parse(string(data))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	return tpl, nil
}
