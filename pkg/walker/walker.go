// Package walker visits the regular files of a project tree while honoring
// the same ignore files git does.
//
// Ignore rules are layered from lowest to highest priority: the global
// excludes file (core.excludesfile, or $XDG_CONFIG_HOME/git/ignore), the
// repository's .git/info/exclude, then every .gitignore from the root down to
// the directory being read. They only apply inside a git work tree, that is
// when the root or one of its ancestors holds a .git entry. Ignored
// directories are never entered and symbolic links are never followed or
// reported. Hidden entries, .git included, are walked like any other.
package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/agentsmd/pkg/logging"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog"
)

const (
	gitDir          = ".git"
	gitignoreFile   = ".gitignore"
	infoExcludeFile = ".git/info/exclude"
	commentPrefix   = "#"
)

// Walker walks a single root directory.
type Walker struct {
	root          string
	globalIgnores bool
	inGitRepo     bool
	logger        zerolog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithGlobalIgnores toggles loading the user's global excludes file. It is
// on by default; tests turn it off to stay independent of the host setup.
func WithGlobalIgnores(enabled bool) Option {
	return func(w *Walker) {
		w.globalIgnores = enabled
	}
}

// New creates a Walker rooted at root.
func New(root string, opts ...Option) *Walker {
	w := &Walker{
		root:          root,
		globalIgnores: true,
		logger:        logging.GetLogger("walker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.inGitRepo = insideWorkTree(root)
	return w
}

// insideWorkTree reports whether dir or one of its ancestors holds a .git
// directory or file.
func insideWorkTree(dir string) bool {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for {
		if _, err := os.Lstat(filepath.Join(dir, gitDir)); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// Walk calls fn with the slash-separated, root-relative path of each regular
// file that is not ignored, in lexical order. It stops at the first call that
// returns true and reports whether that happened. Unreadable entries are
// skipped.
func (w *Walker) Walk(fn func(rel string) bool) bool {
	patterns := w.basePatterns()
	return w.walkDir(w.root, nil, patterns, fn)
}

func (w *Walker) basePatterns() []gitignore.Pattern {
	if !w.inGitRepo {
		return nil
	}
	var patterns []gitignore.Pattern
	if w.globalIgnores {
		patterns = append(patterns, loadGlobalPatterns(w.logger)...)
	}
	exclude, err := readPatterns(filepath.Join(w.root, filepath.FromSlash(infoExcludeFile)), nil)
	if err != nil && !os.IsNotExist(err) {
		w.logger.Trace().Err(err).Msg("Skipping unreadable info/exclude")
	}
	return append(patterns, exclude...)
}

func (w *Walker) walkDir(dir string, domain []string, inherited []gitignore.Pattern, fn func(string) bool) bool {
	patterns := inherited
	if w.inGitRepo {
		local, err := readPatterns(filepath.Join(dir, gitignoreFile), domain)
		if err != nil && !os.IsNotExist(err) {
			w.logger.Trace().Err(err).Str("dir", dir).Msg("Skipping unreadable .gitignore")
		}
		if len(local) > 0 {
			patterns = append(slices.Clip(inherited), local...)
		}
	}
	matcher := gitignore.NewMatcher(patterns)

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Trace().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return false
	}

	for _, entry := range entries {
		name := entry.Name()
		path := append(slices.Clip(domain), name)
		typ := entry.Type()

		switch {
		case typ.IsDir():
			if matcher.Match(path, true) {
				w.logger.Trace().Str("path", strings.Join(path, "/")).Msg("Ignored directory")
				continue
			}
			if w.walkDir(filepath.Join(dir, name), path, patterns, fn) {
				return true
			}
		case typ.IsRegular():
			if matcher.Match(path, false) {
				w.logger.Trace().Str("path", strings.Join(path, "/")).Msg("Ignored file")
				continue
			}
			if fn(strings.Join(path, "/")) {
				return true
			}
		}
	}
	return false
}

// readPatterns parses an ignore file whose patterns apply below domain.
func readPatterns(path string, domain []string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, commentPrefix) || strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(strings.TrimRight(line, " "), domain))
	}
	return patterns, scanner.Err()
}

// loadGlobalPatterns reads core.excludesfile from the user's git config and
// falls back to git's default location under XDG_CONFIG_HOME.
func loadGlobalPatterns(logger zerolog.Logger) []gitignore.Pattern {
	patterns, err := gitignore.LoadGlobalPatterns(osfs.New("/"))
	if err != nil {
		logger.Trace().Err(err).Msg("Skipping global excludes from git config")
	}
	if len(patterns) > 0 {
		return patterns
	}

	patterns, err = readPatterns(filepath.Join(xdg.ConfigHome, "git", "ignore"), nil)
	if err != nil && !os.IsNotExist(err) {
		logger.Trace().Err(err).Msg("Skipping global git ignore file")
	}
	return patterns
}
