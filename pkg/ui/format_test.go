package ui_test

import (
	"bytes"
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/ui"
	"github.com/arthur-debert/agentsmd/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.Format(999), "unknown"},
		{ui.Format(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"parse auto", "auto", ui.FormatAuto, false},
		{"parse empty string as auto", "", ui.FormatAuto, false},
		{"parse term", "term", ui.FormatTerminal, false},
		{"parse terminal", "terminal", ui.FormatTerminal, false},
		{"parse text", "text", ui.FormatText, false},
		{"parse plain", "plain", ui.FormatText, false},
		{"parse mixed case JSON", "Json", ui.FormatJSON, false},
		{"parse invalid format", "invalid", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(f))
	assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(f))
}

func TestDetectFormat_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
}

type report struct {
	Name string `json:"name"`
}

func (r report) Display(styled bool) string {
	if styled {
		return "styled " + r.Name + "\n"
	}
	return "plain " + r.Name + "\n"
}

func TestRenderers(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatText, &buf)
		require.NoError(t, err)

		require.NoError(t, r.RenderResult(report{Name: "x"}))
		require.NoError(t, r.RenderResult(display.Message("hello")))
		require.NoError(t, r.RenderError(errors.New(errors.ErrParse, "bad")))
		assert.Equal(t, "plain x\nhello\nError: [PARSE] bad\n", buf.String())
	})

	t.Run("terminal", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
		require.NoError(t, err)

		require.NoError(t, r.RenderResult(report{Name: "x"}))
		require.NoError(t, r.RenderMessage("done"))
		assert.Contains(t, buf.String(), "styled x\n")
		assert.Contains(t, buf.String(), "done")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatJSON, &buf)
		require.NoError(t, err)

		require.NoError(t, r.RenderResult(report{Name: "x"}))
		var decoded report
		require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "x", decoded.Name)

		buf.Reset()
		require.NoError(t, r.RenderError(errors.New(errors.ErrEval, "boom").WithDetail("language", "zz")))
		var errObj map[string]interface{}
		require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &errObj))
		assert.Equal(t, "EVAL", errObj["code"])
		assert.Equal(t, map[string]interface{}{"language": "zz"}, errObj["details"])
	})

	t.Run("auto_non_file_is_text", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatAuto, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderResult(report{Name: "y"}))
		assert.Equal(t, "plain y\n", buf.String())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestMarkdownPreview(t *testing.T) {
	assert.Equal(t, "auto", ui.NewMarkdownPreview(ui.FormatTerminal).Style)
	assert.Equal(t, "notty", ui.NewMarkdownPreview(ui.FormatText).Style)

	out, err := ui.NewMarkdownPreview(ui.FormatText).Render("# Title\n\nSome *body* text.\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
