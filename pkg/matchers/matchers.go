// Package matchers answers the primitive guard predicates against a project
// root: exists() globs and lang() extension lookups over an ignore-aware file
// walk, and env() lookups through an injected environment.
package matchers

import (
	"os"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/expr"
	"github.com/arthur-debert/agentsmd/pkg/languages"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/arthur-debert/agentsmd/pkg/walker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Env looks up environment variables.
type Env interface {
	Lookup(name string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

// Lookup implements Env.
func (OSEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Evaluator evaluates matchers against Root. It implements expr.Evaluator.
// Nothing is cached between calls; every exists() and lang() walks the tree.
type Evaluator struct {
	Root        string
	Env         Env
	Languages   languages.Registry
	WalkOptions []walker.Option

	logger zerolog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEnv sets the environment used by env() matchers.
func WithEnv(env Env) Option {
	return func(e *Evaluator) {
		e.Env = env
	}
}

// WithLanguages sets the registry used by lang() matchers.
func WithLanguages(reg languages.Registry) Option {
	return func(e *Evaluator) {
		e.Languages = reg
	}
}

// WithWalkerOptions passes options to every file walk.
func WithWalkerOptions(opts ...walker.Option) Option {
	return func(e *Evaluator) {
		e.WalkOptions = append(e.WalkOptions, opts...)
	}
}

// New returns an Evaluator for root using the process environment and the
// default language registry unless overridden.
func New(root string, opts ...Option) *Evaluator {
	e := &Evaluator{
		Root:      root,
		Env:       OSEnv{},
		Languages: languages.Default(),
		logger:    logging.GetLogger("matchers"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match implements expr.Evaluator.
func (e *Evaluator) Match(m expr.Matcher) (bool, error) {
	var (
		ok  bool
		err error
	)
	switch m := m.(type) {
	case expr.Exists:
		ok, err = e.exists(m.Pattern)
	case expr.EnvExists:
		v, set := e.Env.Lookup(m.Name)
		ok = set && v != ""
	case expr.EnvEquals:
		v, set := e.Env.Lookup(m.Name)
		ok = set && v == m.Value
	case expr.Lang:
		ok, err = e.lang(m.Name)
	default:
		return false, errors.Newf(errors.ErrInternal, "unsupported matcher %T", m)
	}
	if err != nil {
		return false, err
	}

	e.logger.Debug().
		Str("matcher", m.String()).
		Bool("result", ok).
		Msg("Evaluated matcher")
	return ok, nil
}

func (e *Evaluator) exists(pattern string) (bool, error) {
	if !doublestar.ValidatePattern(pattern) {
		return false, errors.Newf(errors.ErrEval, "invalid exists() pattern: %q", pattern).
			WithDetail("pattern", pattern)
	}
	return e.walk(func(rel string) bool {
		return doublestar.MatchUnvalidated(pattern, rel)
	}), nil
}

func (e *Evaluator) lang(name string) (bool, error) {
	exts, ok := e.Languages.Extensions(name)
	if !ok {
		return false, errors.Newf(errors.ErrEval, "unknown language: %s", name).
			WithDetail("language", name)
	}
	if len(exts) == 0 {
		return false, nil
	}

	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[ext] = true
	}
	return e.walk(func(rel string) bool {
		return set[languages.Extension(rel)]
	}), nil
}

func (e *Evaluator) walk(match func(rel string) bool) bool {
	return walker.New(e.Root, e.WalkOptions...).Walk(match)
}
