// Package notes removes maintainer notes from markdown before it is
// published. A note is an HTML comment whose body starts with "note:":
//
//	<!-- note: regenerate with `agents --claude` -->
//
// Notes are located with a markdown parser, so comments shown inside code
// blocks and code spans are left alone. Other comments are kept.
package notes

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	notePrefix   = "note:"
)

type span struct {
	start, end int
}

var parser = goldmark.New().Parser()

// Strip returns markdown with every maintainer note removed. A note that is
// alone on its line(s) is removed together with its line ending.
func Strip(markdown string) string {
	source := []byte(markdown)
	doc := parser.Parse(text.NewReader(source))

	var cuts []span
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.HTMLBlock:
			if n.HTMLBlockType == ast.HTMLBlockType2 && n.Lines().Len() > 0 {
				if s, ok := blockNote(source, n.Lines().At(0).Start); ok {
					cuts = append(cuts, s)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			if n.Segments.Len() == 0 {
				return ast.WalkContinue, nil
			}
			start := n.Segments.At(0).Start
			end := n.Segments.At(n.Segments.Len() - 1).Stop
			if isNote(source[start:end]) {
				cuts = append(cuts, span{start, end})
			}
		}
		return ast.WalkContinue, nil
	})

	if len(cuts) == 0 {
		return markdown
	}

	var b strings.Builder
	b.Grow(len(source))
	last := 0
	for _, c := range cuts {
		if c.start < last {
			continue
		}
		b.Write(source[last:c.start])
		last = c.end
	}
	b.Write(source[last:])
	return b.String()
}

// blockNote finds the comment opening the HTML block that starts at or after
// from and reports its span, widened to whole lines when nothing else shares
// them.
func blockNote(source []byte, from int) (span, bool) {
	lineStart := bytes.LastIndexByte(source[:from], '\n') + 1
	open := bytes.Index(source[lineStart:], []byte(commentOpen))
	if open < 0 {
		return span{}, false
	}
	open += lineStart

	closeAt := bytes.Index(source[open+len(commentOpen):], []byte(commentClose))
	if closeAt < 0 {
		return span{}, false
	}
	end := open + len(commentOpen) + closeAt + len(commentClose)
	if !isNote(source[open:end]) {
		return span{}, false
	}

	lineEnd := len(source)
	if nl := bytes.IndexByte(source[end:], '\n'); nl >= 0 {
		lineEnd = end + nl + 1
	}
	if isBlank(source[lineStart:open]) && isBlank(source[end:lineEnd]) {
		return span{lineStart, lineEnd}, true
	}
	return span{open, end}, true
}

func isNote(comment []byte) bool {
	s := string(comment)
	if len(s) < len(commentOpen)+len(commentClose) ||
		!strings.HasPrefix(s, commentOpen) || !strings.HasSuffix(s, commentClose) {
		return false
	}
	body := strings.TrimSpace(s[len(commentOpen) : len(s)-len(commentClose)])
	return len(body) >= len(notePrefix) && strings.EqualFold(body[:len(notePrefix)], notePrefix)
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
