package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how agents prints command results: styled for a color
// terminal, plain text, or JSON.
type Format int

const (
	// FormatAuto is resolved against the output stream before rendering
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
)

var formatNames = [...]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// Accepted --format values, including aliases.
var formatsByName = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat reads a --format value. Names are case-insensitive.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatsByName[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

// Resolve replaces FormatAuto with the format detected for output.
func (f Format) Resolve(output *os.File) Format {
	if f != FormatAuto {
		return f
	}
	return DetectFormat(output)
}

// DetectFormat picks FormatTerminal only when output is a terminal that can
// show color and NO_COLOR is unset.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
