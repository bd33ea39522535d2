package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/agentsmd/pkg/output/styles"
	"github.com/pmezard/go-difflib/difflib"
)

const diffContext = 3

// NoChanges is printed by --diff when the output is already up to date.
const NoChanges = "No changes"

// UnifiedDiff returns a unified diff turning current into rendered, with
// headers a/<name> and b/<name> and three lines of context. It returns ""
// when the two are equal.
func UnifiedDiff(current, rendered, name string) string {
	if current == rendered {
		return ""
	}
	diff := difflib.UnifiedDiff{
		A:        splitLines(current),
		B:        splitLines(rendered),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContext,
	}
	// Writing to an in-memory buffer cannot fail.
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text
}

// splitLines splits s after each newline. A final line without a newline
// gets one, and no empty line is produced for a trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}

// PrintDiff writes diff line by line. When styled, file headers, hunk
// headers, additions and removals are colored with the Diff* styles.
func PrintDiff(w io.Writer, diff string, styled bool) error {
	scanner := bufio.NewScanner(strings.NewReader(diff))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if styled {
			line = styleDiffLine(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func styleDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return styles.Render("DiffHeader", line)
	case strings.HasPrefix(line, "@@"):
		return styles.Render("DiffHunk", line)
	case strings.HasPrefix(line, "+"):
		return styles.Render("DiffAdded", line)
	case strings.HasPrefix(line, "-"):
		return styles.Render("DiffRemoved", line)
	default:
		return line
	}
}
