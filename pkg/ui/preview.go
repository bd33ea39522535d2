package ui

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownPreview renders markdown for display in a terminal.
type MarkdownPreview struct {
	Style string // "auto", "dark", "light", "notty", or a path to a style file
	Width int    // word wrap width; 0 keeps glamour's default
}

// NewMarkdownPreview returns a preview suited to format: styled for
// terminals, unstyled ("notty") for everything else.
func NewMarkdownPreview(format Format) *MarkdownPreview {
	style := "notty"
	if format == FormatTerminal {
		style = "auto"
	}
	return &MarkdownPreview{Style: style}
}

// Render converts markdown to terminal output.
func (p *MarkdownPreview) Render(markdown string) (string, error) {
	var options []glamour.TermRendererOption

	switch p.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStylePath(p.Style))
	}
	if p.Width > 0 {
		options = append(options, glamour.WithWordWrap(p.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
