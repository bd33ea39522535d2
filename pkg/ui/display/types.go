// Package display holds the types shared by the output renderers.
package display

// Displayable is a command result that knows how to present itself to a
// person. styled is true when the text goes to a color terminal.
type Displayable interface {
	Display(styled bool) string
}

// Message is a plain informational line.
type Message string

// Display implements Displayable.
func (m Message) Display(bool) string {
	return string(m)
}
