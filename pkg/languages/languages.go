// Package languages resolves language names used by lang() guards to the
// file extensions that identify them.
package languages

import (
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Registry maps a language name to its file extensions. Extensions are
// lower-cased without a leading dot. ok is false when the name is unknown;
// a known language may still have no extensions.
type Registry interface {
	Extensions(name string) (exts []string, ok bool)
}

// Default returns the registry backed by GitHub Linguist data. Names are
// resolved case-insensitively through Linguist's names and aliases, so
// "rust", "Rust" and "rs" all resolve to the same language.
func Default() Registry {
	return linguist{}
}

type linguist struct{}

func (linguist) Extensions(name string) ([]string, bool) {
	lang, ok := enry.GetLanguageByAlias(strings.TrimSpace(name))
	if !ok {
		return nil, false
	}
	return Normalize(enry.GetLanguageExtensions(lang)), true
}

// Overrides is a registry of explicitly configured languages layered over a
// base registry. Keys are matched case-insensitively.
type Overrides struct {
	base  Registry
	langs map[string][]string
}

// WithOverrides layers langs over base. A language defined in langs replaces
// the base definition of the same name entirely.
func WithOverrides(base Registry, langs map[string][]string) *Overrides {
	o := &Overrides{base: base, langs: make(map[string][]string, len(langs))}
	for name, exts := range langs {
		o.langs[strings.ToLower(strings.TrimSpace(name))] = Normalize(exts)
	}
	return o
}

// Extensions implements Registry.
func (o *Overrides) Extensions(name string) ([]string, bool) {
	if exts, ok := o.langs[strings.ToLower(strings.TrimSpace(name))]; ok {
		return exts, true
	}
	if o.base == nil {
		return nil, false
	}
	return o.base.Extensions(name)
}

// Normalize lower-cases extensions, strips one leading dot, and drops empty
// and duplicate entries. The result is sorted.
func Normalize(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Extension returns the lower-cased final extension of a file name without
// its dot, or "" when there is none. A leading dot marks a hidden file, not
// an extension, so ".rs" has no extension.
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
