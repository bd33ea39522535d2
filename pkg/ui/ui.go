// Package ui provides a unified interface for rendering command results in
// different formats: terminal (rich), text (plain) and JSON. It also renders
// markdown previews of generated files.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/agentsmd/pkg/ui/json"
	"github.com/arthur-debert/agentsmd/pkg/ui/terminal"
	"github.com/arthur-debert/agentsmd/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result. Results implementing
	// display.Displayable present themselves; JSON encodes them as is.
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
