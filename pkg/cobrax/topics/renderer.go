package topics

import (
	"github.com/arthur-debert/agentsmd/pkg/ui"
)

// Renderer defines the interface for rendering topic content
type Renderer interface {
	// Render takes raw content and returns formatted content for terminal display
	Render(content string, format string) string
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// MarkdownRenderer renders .md topics with a markdown preview and leaves
// other formats alone.
type MarkdownRenderer struct {
	Preview *ui.MarkdownPreview
}

// NewMarkdownRenderer creates a markdown renderer styled for format.
func NewMarkdownRenderer(format ui.Format) *MarkdownRenderer {
	return &MarkdownRenderer{Preview: ui.NewMarkdownPreview(format)}
}

// Render converts markdown topics for terminal display
func (r *MarkdownRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}
	rendered, err := r.Preview.Render(content)
	if err != nil {
		// Fallback to plain text on error
		return content
	}
	return rendered
}
