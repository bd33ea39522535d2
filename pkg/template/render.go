package template

import (
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/expr"
	"github.com/arthur-debert/agentsmd/pkg/matchers"
)

// Render evaluates the template against the project at root. prefix, when
// non-empty, is emitted verbatim before any template content. Guards are
// evaluated with a matchers.Evaluator built from opts.
func (t *Template) Render(root, prefix string, opts ...matchers.Option) (string, error) {
	return t.RenderWith(matchers.New(root, opts...), prefix)
}

// RenderWith is Render with a caller supplied evaluator. The first guard that
// fails to evaluate aborts the render and no output is returned.
func (t *Template) RenderWith(ev expr.Evaluator, prefix string) (string, error) {
	var b strings.Builder
	b.WriteString(prefix)
	if err := renderBlocks(&b, t.Blocks, ev); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderBlocks(b *strings.Builder, blocks []Block, ev expr.Evaluator) error {
	for _, block := range blocks {
		switch block := block.(type) {
		case Text:
			b.WriteString(string(block))
		case *If:
			ok, err := expr.Eval(block.Cond, ev)
			if err != nil {
				return err
			}
			if ok {
				if err := renderBlocks(b, block.Body, ev); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
