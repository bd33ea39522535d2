// Package template implements the agents template language: markdown text
// with conditional sections.
//
//	Before
//	<!-- if exists("Cargo.toml") && !env(CI) -->
//	Rust specific notes.
//	<!-- endif -->
//	After
//
// An if tag opens a section guarded by an expression (see package expr) and
// an endif tag closes the innermost open section. Sections nest to any depth.
// Any other HTML comment is kept verbatim.
package template

import (
	"github.com/arthur-debert/agentsmd/pkg/expr"
)

// Block is a node of a parsed template: Text or *If.
type Block interface {
	block()
}

// Text is literal template content, emitted verbatim.
type Text string

// If is a conditional section. Body is rendered only when Cond is true.
type If struct {
	Cond expr.Expr
	Body []Block
}

func (Text) block() {}
func (*If) block()  {}

// Template is a parsed template. It is immutable and safe to render any
// number of times.
type Template struct {
	Blocks []Block
}

// Stats describes the structure of a template without evaluating it.
type Stats struct {
	// Conditionals is the total number of if sections.
	Conditionals int
	// MaxDepth is the deepest section nesting; 0 when there are none.
	MaxDepth int
	// Matchers lists the distinct matchers used by all guards, in order of
	// first appearance.
	Matchers []expr.Matcher
}

// Stats walks the template and summarizes its sections.
func (t *Template) Stats() Stats {
	var s Stats
	seen := make(map[expr.Matcher]bool)

	var visit func(blocks []Block, depth int)
	visit = func(blocks []Block, depth int) {
		for _, b := range blocks {
			section, ok := b.(*If)
			if !ok {
				continue
			}
			s.Conditionals++
			if depth+1 > s.MaxDepth {
				s.MaxDepth = depth + 1
			}
			for _, m := range expr.Matchers(section.Cond) {
				if !seen[m] {
					seen[m] = true
					s.Matchers = append(s.Matchers, m)
				}
			}
			visit(section.Body, depth+1)
		}
	}
	visit(t.Blocks, 0)

	return s
}
