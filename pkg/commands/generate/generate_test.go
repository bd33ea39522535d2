package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentsmd/pkg/config"
	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup returns a project root holding local and a shared template outside
// the project.
func setup(t *testing.T, local, shared string) (root, sharedPath string) {
	t.Helper()
	root = testutil.TempProject(t)
	if local != "" {
		testutil.CreateFile(t, root, ".agents.md", local)
	}
	sharedPath = testutil.CreateFile(t, t.TempDir(), "shared.md", shared)
	return root, sharedPath
}

func run(t *testing.T, opts Options) (*Result, error) {
	t.Helper()
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Env == nil {
		opts.Env = testutil.FakeEnv{}
	}
	return Run(opts)
}

func TestRun_CombinesLocalThenShared(t *testing.T) {
	root, shared := setup(t, "L\n", "S\n")

	result, err := run(t, Options{Root: root, Template: shared, Mode: ModeStdout})
	require.NoError(t, err)

	assert.Equal(t, "L\nS\n", result.Content)
	assert.Equal(t, []string{filepath.Join(root, ".agents.md"), shared}, result.Templates)
	assert.NoFileExists(t, filepath.Join(root, "AGENTS.md"))
}

func TestRun_LocalIsFullTemplate(t *testing.T) {
	root, shared := setup(t,
		"Before\n<!-- if exists(\"Cargo.toml\") -->Hit\n<!-- endif -->\nAfter\n",
		"")

	result, err := run(t, Options{Root: root, Template: shared, Mode: ModeStdout})
	require.NoError(t, err)
	assert.Equal(t, "Before\n\nAfter\n", result.Content)

	testutil.Touch(t, root, "Cargo.toml")
	result, err = run(t, Options{Root: root, Template: shared, Mode: ModeStdout})
	require.NoError(t, err)
	assert.Equal(t, "Before\nHit\n\nAfter\n", result.Content)
}

func TestRun_SameTemplateRenderedOnce(t *testing.T) {
	root := testutil.TempProject(t)
	local := testutil.CreateFile(t, root, ".agents.md", "once\n")

	result, err := run(t, Options{Root: root, Template: local, Mode: ModeStdout})
	require.NoError(t, err)
	assert.Equal(t, "once\n", result.Content)
	assert.Equal(t, []string{local}, result.Templates)
}

func TestRun_NoLocalTemplate(t *testing.T) {
	root, shared := setup(t, "", "<!-- if env(CI) -->ci\n<!-- endif -->shared\n")

	result, err := run(t, Options{Root: root, Template: shared, Mode: ModeStdout, Env: testutil.FakeEnv{"CI": "1"}})
	require.NoError(t, err)
	assert.Equal(t, "ci\nshared\n", result.Content)
	assert.Equal(t, []string{shared}, result.Templates)
}

func TestRun_MissingSharedTemplate(t *testing.T) {
	root, _ := setup(t, "L\n", "")

	_, err := run(t, Options{Root: root, Template: filepath.Join(root, "nope.md"), Mode: ModeStdout})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRead))
	assert.Contains(t, err.Error(), "template read error")
	assert.False(t, errors.IsTemplateError(err))
}

func TestRun_TemplateErrors(t *testing.T) {
	tests := []struct {
		name   string
		shared string
		code   errors.ErrorCode
	}{
		{"parse", "<!-- if exists(\"a\") -->\nunclosed\n", errors.ErrParse},
		{"eval", "<!-- if lang(klingon) -->x<!-- endif -->", errors.ErrEval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, shared := setup(t, "", tt.shared)

			_, err := run(t, Options{Root: root, Template: shared})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			assert.True(t, errors.IsTemplateError(err))
			assert.Equal(t, shared, errors.GetErrorDetails(err)["path"])
			assert.NoFileExists(t, filepath.Join(root, "AGENTS.md"))
		})
	}
}

func TestRun_Write(t *testing.T) {
	root, shared := setup(t, "L\n", "S\n")
	out := filepath.Join(root, "AGENTS.md")

	result, err := run(t, Options{Root: root, Template: shared})
	require.NoError(t, err)
	assert.Equal(t, []string{out}, result.Written)
	assert.Equal(t, "L\nS\n", testutil.ReadFile(t, out))
	assert.Contains(t, result.Display(false), "Wrote "+out)

	result, err = run(t, Options{Root: root, Template: shared})
	require.NoError(t, err)
	assert.Empty(t, result.Written)
	assert.Equal(t, []string{out}, result.Unchanged)
	assert.Contains(t, result.Display(false), "Unchanged "+out)
}

func TestRun_WriteClaude(t *testing.T) {
	root, shared := setup(t, "", "S\n")
	cfg := config.Default()
	cfg.Claude = true
	cfg.Output = "docs/AGENTS.md"

	result, err := run(t, Options{Root: root, Template: shared, Config: cfg})
	require.NoError(t, err)

	agents := filepath.Join(root, "docs", "AGENTS.md")
	claude := filepath.Join(root, "docs", "CLAUDE.md")
	assert.Equal(t, []string{agents, claude}, result.Written)
	assert.Equal(t, "S\n", testutil.ReadFile(t, claude))
}

func TestRun_AbsoluteOutput(t *testing.T) {
	root, shared := setup(t, "", "S\n")
	cfg := config.Default()
	cfg.Output = filepath.Join(t.TempDir(), "out.md")

	result, err := run(t, Options{Root: root, Template: shared, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, cfg.Output, result.Output)
	assert.FileExists(t, cfg.Output)
}

func TestRun_Diff(t *testing.T) {
	root, shared := setup(t, "", "one\ntwo\n")
	out := filepath.Join(root, "AGENTS.md")

	t.Run("missing output", func(t *testing.T) {
		result, err := run(t, Options{Root: root, Template: shared, Mode: ModeDiff})
		require.NoError(t, err)
		assert.Contains(t, result.Diff, "--- a/AGENTS.md")
		assert.Contains(t, result.Diff, "+++ b/AGENTS.md")
		assert.Contains(t, result.Diff, "+one\n")
		assert.NoFileExists(t, out)
	})

	t.Run("changed output", func(t *testing.T) {
		require.NoError(t, os.WriteFile(out, []byte("one\n"), 0644))

		result, err := run(t, Options{Root: root, Template: shared, Mode: ModeDiff})
		require.NoError(t, err)
		assert.Contains(t, result.Diff, "+two\n")
		assert.Contains(t, result.Display(false), "+two")
		assert.Equal(t, "one\n", testutil.ReadFile(t, out))
	})

	t.Run("no changes", func(t *testing.T) {
		require.NoError(t, os.WriteFile(out, []byte("one\ntwo\n"), 0644))

		result, err := run(t, Options{Root: root, Template: shared, Mode: ModeDiff})
		require.NoError(t, err)
		assert.Empty(t, result.Diff)
		assert.Equal(t, "No changes", result.Display(false))
	})
}

func TestRun_Prefix(t *testing.T) {
	root, shared := setup(t, "L\n", "S\n")
	prefix := testutil.CreateFile(t, t.TempDir(), "prefix.md",
		"# Generated\n<!-- note: edit the templates instead -->\n<!-- keep -->\n")
	cfg := config.Default()
	cfg.Prefix = prefix

	result, err := run(t, Options{Root: root, Template: shared, Config: cfg, Mode: ModeStdout})
	require.NoError(t, err)
	assert.Equal(t, "# Generated\n<!-- keep -->\nL\nS\n", result.Content)

	cfg.Prefix = filepath.Join(root, "missing-prefix.md")
	_, err = run(t, Options{Root: root, Template: shared, Config: cfg, Mode: ModeStdout})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRead))
}

func TestRun_LanguageOverrides(t *testing.T) {
	root, shared := setup(t, "", "<!-- if lang(gleam) -->gleam\n<!-- endif -->")
	testutil.Touch(t, root, "src/app.gleam")
	cfg := config.Default()
	cfg.Languages = map[string]config.Language{"gleam": {Extensions: []string{"gleam"}}}

	result, err := run(t, Options{Root: root, Template: shared, Config: cfg, Mode: ModeStdout})
	require.NoError(t, err)
	assert.Equal(t, "gleam\n", result.Content)
}

func TestRun_DetectsRootFromPath(t *testing.T) {
	root, shared := setup(t, "L\n", "S\n")
	nested := testutil.CreateDir(t, root, "a/b")

	result, err := run(t, Options{Path: nested, Template: shared, Mode: ModeStdout})
	require.NoError(t, err)
	assert.Equal(t, root, result.Root)
	assert.Equal(t, "L\nS\n", result.Content)
}

func TestRun_RootNotFound(t *testing.T) {
	cfg := config.Default()
	cfg.Root.Markers = []string{".agents-test-marker-none"}
	cfg.Root.FallbackMarkers = nil

	_, err := run(t, Options{Path: t.TempDir(), Config: cfg, Mode: ModeStdout})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRootNotFound))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "write", ModeWrite.String())
	assert.Equal(t, "stdout", ModeStdout.String())
	assert.Equal(t, "diff", ModeDiff.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
