// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/output/styles"
	"github.com/arthur-debert/agentsmd/pkg/ui/display"
)

// Renderer provides rich terminal output using the style registry
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case display.Displayable:
		_, err := fmt.Fprintln(r.output, strings.TrimRight(v.Display(true), "\n"))
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error in the Error style
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, styles.Render("Error", "Error: ")+err.Error())
	return err2
}

// RenderMessage renders a simple message in the Info style
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Info", msg))
	return err
}
