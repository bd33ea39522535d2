package template_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/expr"
	"github.com/arthur-debert/agentsmd/pkg/matchers"
	"github.com/arthur-debert/agentsmd/pkg/template"
	"github.com/arthur-debert/agentsmd/pkg/testutil"
	"github.com/arthur-debert/agentsmd/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, root, text, prefix string, env testutil.FakeEnv) (string, error) {
	t.Helper()
	tmpl, err := template.Parse(text)
	require.NoError(t, err)
	return tmpl.Render(root, prefix,
		matchers.WithEnv(env),
		matchers.WithWalkerOptions(walker.WithGlobalIgnores(false)),
	)
}

func TestRender_ExistsToggles(t *testing.T) {
	const text = "Before\n<!-- if exists(\"Cargo.toml\") -->\nMatched\n<!-- endif -->\nAfter\n"
	root := testutil.TempProject(t)

	out, err := render(t, root, text, "", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Before")
	assert.Contains(t, out, "After")
	assert.NotContains(t, out, "Matched")

	testutil.Touch(t, root, "Cargo.toml")

	out, err = render(t, root, text, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Before\n\nMatched\n\nAfter\n", out)
}

func TestRender_NoDirectivesIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"# Heading\n\n- item\n- item\n",
		"<!-- a comment -->\ntext <!--x--> more",
		"<!---->",
		"unicode: héllo wörld ✓\n",
		"dashes -- and arrows --> alone",
	}
	root := testutil.TempProject(t)

	for _, in := range inputs {
		for _, prefix := range []string{"", "PREFIX\n"} {
			out, err := render(t, root, in, prefix, nil)
			require.NoError(t, err)
			assert.Equal(t, prefix+in, out)
		}
	}
}

func TestRender_Nested(t *testing.T) {
	const text = "a<!-- if env(A) -->b<!-- if env(B) -->c<!-- endif -->d<!-- endif -->e"

	tests := []struct {
		name string
		env  testutil.FakeEnv
		want string
	}{
		{"none", testutil.FakeEnv{}, "ae"},
		{"outer_only", testutil.FakeEnv{"A": "1"}, "abde"},
		{"inner_only", testutil.FakeEnv{"B": "1"}, "ae"},
		{"both", testutil.FakeEnv{"A": "1", "B": "1"}, "abcde"},
	}

	root := testutil.TempProject(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := render(t, root, text, "", tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_PassthroughCommentsInsideSections(t *testing.T) {
	const text = "<!-- if env(A) --><!-- note: hidden -->shown<!-- endif -->"
	root := testutil.TempProject(t)

	out, err := render(t, root, text, "", testutil.FakeEnv{"A": "yes"})
	require.NoError(t, err)
	assert.Equal(t, "<!-- note: hidden -->shown", out)
}

func TestRender_PrefixComesFirst(t *testing.T) {
	root := testutil.TempProject(t)

	out, err := render(t, root, "<!-- if env(MISSING) -->gone<!-- endif -->body", "# Generated\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "# Generated\nbody", out)
}

func TestRender_EvalErrorsAbort(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains string
	}{
		{"unknown_language", `x<!-- if lang("definitely-not-a-language") -->y<!-- endif -->`, "unknown language"},
		{"invalid_glob", `x<!-- if exists("{foo") -->y<!-- endif -->`, "invalid exists() pattern"},
		{"nested_error", `<!-- if env(A) --><!-- if lang("nope-nope") -->y<!-- endif --><!-- endif -->`, "unknown language"},
	}

	root := testutil.TempProject(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := render(t, root, tt.text, "prefix", testutil.FakeEnv{"A": "1"})
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Contains(t, err.Error(), tt.contains)
			assert.True(t, errors.IsErrorCode(err, errors.ErrEval))
		})
	}
}

func TestRender_SkippedSectionsAreNotEvaluated(t *testing.T) {
	root := testutil.TempProject(t)

	out, err := render(t, root,
		`<!-- if env(A) --><!-- if lang("nope-nope") -->y<!-- endif --><!-- endif -->ok`,
		"", testutil.FakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestRenderWith_EvaluatesEachGuardEveryTime(t *testing.T) {
	tmpl, err := template.Parse(strings.Repeat("<!-- if env(A) -->x<!-- endif -->", 3))
	require.NoError(t, err)

	calls := 0
	ev := expr.EvaluatorFunc(func(expr.Matcher) (bool, error) {
		calls++
		return true, nil
	})

	out, err := tmpl.RenderWith(ev, "")
	require.NoError(t, err)
	assert.Equal(t, "xxx", out)
	assert.Equal(t, 3, calls)

	_, err = tmpl.RenderWith(ev, "")
	require.NoError(t, err)
	assert.Equal(t, 6, calls)
}

func TestRenderWith_PropagatesEvaluatorError(t *testing.T) {
	boom := stderrors.New("boom")
	tmpl, err := template.Parse("a<!-- if env(A) -->b<!-- endif -->")
	require.NoError(t, err)

	out, err := tmpl.RenderWith(expr.EvaluatorFunc(func(expr.Matcher) (bool, error) {
		return false, boom
	}), "")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out)
}
