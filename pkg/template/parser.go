package template

import (
	stderrors "errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/expr"
	"github.com/arthur-debert/agentsmd/pkg/logging"
)

const (
	tagOpen  = "<!--"
	tagClose = "-->"

	keywordIf    = "if"
	keywordEndif = "endif"
)

// frame is an open if section waiting for its endif.
type frame struct {
	cond   expr.Expr
	parent []Block
	offset int
}

// Parse parses template text into a block tree. Nesting is tracked with an
// explicit stack, so deeply nested input cannot exhaust the call stack.
// Errors carry the PARSE code with offset, line and column details.
func Parse(text string) (*Template, error) {
	logger := logging.GetLogger("template")

	var (
		stack []frame
		cur   []Block
		pos   int
	)

	for pos < len(text) {
		start := strings.Index(text[pos:], tagOpen)
		if start < 0 {
			cur = append(cur, Text(text[pos:]))
			break
		}
		start += pos
		if start > pos {
			cur = append(cur, Text(text[pos:start]))
		}

		inner := skipSpace(text, start+len(tagOpen))
		end := strings.Index(text[inner:], tagClose)
		if end < 0 {
			return nil, parseError(text, start, "unterminated tag; missing '-->'")
		}
		end += inner
		next := end + len(tagClose)

		switch {
		case strings.HasPrefix(text[inner:], keywordIf):
			guardStart := inner + len(keywordIf)
			cond, err := parseGuard(text, guardStart, text[guardStart:end])
			if err != nil {
				return nil, err
			}
			logger.Trace().Int("offset", start).Str("guard", cond.String()).Msg("Opened if section")
			stack = append(stack, frame{cond: cond, parent: cur, offset: start})
			cur = nil

		case strings.HasPrefix(text[inner:], keywordEndif):
			if strings.TrimSpace(text[inner+len(keywordEndif):end]) != "" {
				return nil, parseError(text, start, "unexpected content after 'endif'")
			}
			if len(stack) == 0 {
				return nil, parseError(text, start, "stray 'endif'")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			logger.Trace().Int("offset", start).Int("depth", len(stack)).Msg("Closed if section")
			cur = append(top.parent, &If{Cond: top.cond, Body: cur})

		default:
			cur = append(cur, Text(text[start:next]))
		}

		pos = next
	}

	if len(stack) > 0 {
		return nil, parseError(text, stack[len(stack)-1].offset, "unclosed 'if' block")
	}

	logger.Debug().Int("blocks", len(cur)).Msg("Parsed template")
	return &Template{Blocks: cur}, nil
}

// parseGuard parses the raw text between "if" and "-->". base is the offset
// of raw within text, used to report guard errors against the template.
func parseGuard(text string, base int, raw string) (expr.Expr, error) {
	trimmed := strings.TrimSpace(raw)
	cond, err := expr.Parse(trimmed)
	if err == nil {
		return cond, nil
	}

	offset := base + strings.Index(raw, trimmed)
	msg := err.Error()
	var exprErr *errors.Error
	if stderrors.As(err, &exprErr) {
		msg = exprErr.Message
		if o, ok := exprErr.Details["offset"].(int); ok {
			offset += o
		}
	}
	return nil, parseError(text, offset, "invalid 'if' guard: "+msg).WithDetail("guard", trimmed)
}

func parseError(text string, offset int, msg string) *errors.Error {
	line, col := position(text, offset)
	return errors.Newf(errors.ErrParse, "%s at line %d, column %d", msg, line, col).
		WithDetail("offset", offset).
		WithDetail("line", line).
		WithDetail("column", col)
}

// position converts a byte offset to a 1-based line and rune column.
func position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, col
}

func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
