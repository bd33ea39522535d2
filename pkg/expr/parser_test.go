package expr_test

import (
	"testing"

	"github.com/arthur-debert/agentsmd/pkg/errors"
	"github.com/arthur-debert/agentsmd/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(name string) expr.Expr { return expr.Match(expr.EnvExists{Name: name}) }

func TestParse_Matchers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  expr.Expr
	}{
		{"exists_double_quoted", `exists("Cargo.toml")`, expr.Match(expr.Exists{Pattern: "Cargo.toml"})},
		{"exists_single_quoted", `exists('src/**')`, expr.Match(expr.Exists{Pattern: "src/**"})},
		{"exists_raw", `exists(r"**/*.rs")`, expr.Match(expr.Exists{Pattern: "**/*.rs"})},
		{"exists_raw_keeps_backslashes", `exists(r"a\nb")`, expr.Match(expr.Exists{Pattern: `a\nb`})},
		{"exists_bare", `exists(go.mod)`, expr.Match(expr.Exists{Pattern: "go.mod"})},
		{"exists_bare_starting_with_r", `exists(readme.md)`, expr.Match(expr.Exists{Pattern: "readme.md"})},
		{"exists_inner_whitespace", `exists ( "a b" )`, expr.Match(expr.Exists{Pattern: "a b"})},
		{"lang_bare", `lang(rust)`, expr.Match(expr.Lang{Name: "rust"})},
		{"lang_quoted", `lang("Go")`, expr.Match(expr.Lang{Name: "Go"})},
		{"env_exists", `env(CI)`, env("CI")},
		{"env_exists_padded", `env( CI )`, env("CI")},
		{"env_equals_quoted", `env(NODE_ENV="production")`, expr.Match(expr.EnvEquals{Name: "NODE_ENV", Value: "production"})},
		{"env_equals_bare", `env(MODE=dev)`, expr.Match(expr.EnvEquals{Name: "MODE", Value: "dev"})},
		{"env_equals_spaced", `env(MODE = 'dev')`, expr.Match(expr.EnvEquals{Name: "MODE", Value: "dev"})},
		{"env_equals_empty_value", `env(MODE=)`, expr.Match(expr.EnvEquals{Name: "MODE", Value: ""})},
		{"env_quoted_name", `env("CI")`, env("CI")},
		{"surrounding_whitespace", "  env(CI)\n", env("CI")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Escapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`exists("a\nb")`, "a\nb"},
		{`exists("a\rb")`, "a\rb"},
		{`exists("a\tb")`, "a\tb"},
		{`exists("a\\b")`, `a\b`},
		{`exists("say \"hi\"")`, `say "hi"`},
		{`exists('it\'s')`, "it's"},
		{`exists('mixed "quotes"')`, `mixed "quotes"`},
		{`exists("keep \q")`, `keep \q`},
		{`exists("[ab]\*")`, `[ab]\*`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, expr.Match(expr.Exists{Pattern: tt.want}), got)
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	a, b, c := env("A"), env("B"), env("C")

	tests := []struct {
		name  string
		input string
		want  expr.Expr
	}{
		{"and_binds_tighter_than_or", "env(A) || env(B) && env(C)", expr.Or(a, expr.And(b, c))},
		{"and_left_assoc", "env(A) && env(B) && env(C)", expr.And(expr.And(a, b), c)},
		{"or_left_assoc", "env(A) || env(B) || env(C)", expr.Or(expr.Or(a, b), c)},
		{"not_binds_tightest", "!env(A) && env(B)", expr.And(expr.Not(a), b)},
		{"not_chains", "!!env(A)", expr.Not(expr.Not(a))},
		{"parens_group", "(env(A) || env(B)) && env(C)", expr.And(expr.Or(a, b), c)},
		{"not_of_group", "!(env(A) || env(B))", expr.Not(expr.Or(a, b))},
		{"nested_parens", "((env(A)))", a},
		{"no_spaces", "env(A)&&!env(B)||env(C)", expr.Or(expr.And(a, expr.Not(b)), c)},
		{
			"mixed_matchers",
			`env(CI) && !env(NODE_ENV="production") || exists(r"**/*.rs")`,
			expr.Or(
				expr.And(env("CI"), expr.Not(expr.Match(expr.EnvEquals{Name: "NODE_ENV", Value: "production"}))),
				expr.Match(expr.Exists{Pattern: "**/*.rs"}),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"empty", "", "expected matcher or '('"},
		{"unknown_keyword", `file("x")`, "expected matcher or '('"},
		{"keyword_prefix", `existsFoo("x")`, "expected matcher or '('"},
		{"keyword_underscore", `env_x(A)`, "expected matcher or '('"},
		{"missing_close_paren", "(env(A)", "expected ')'"},
		{"missing_open_paren", `exists "x"`, "expected '('"},
		{"matcher_missing_close", `exists("x"`, "expected ')'"},
		{"env_missing_open", "env CI", "expected '(' after env"},
		{"env_unterminated", "env(", "missing ')'"},
		{"env_empty", "env()", "empty env() argument"},
		{"env_blank", "env(   )", "empty env() argument"},
		{"env_empty_name", "env(=x)", "empty env var name"},
		{"env_empty_quoted_name", `env("")`, "empty env var name"},
		{"env_extra_tokens", "env(A=b c)", "expected ')'"},
		{"trailing_tokens", "env(A) env(B)", "trailing characters"},
		{"trailing_close", "env(A))", "trailing characters"},
		{"single_pipe", "env(A) | env(B)", "trailing characters"},
		{"dangling_and", "env(A) &&", "expected matcher or '('"},
		{"dangling_not", "!", "expected matcher or '('"},
		{"unterminated_string", `exists("abc)`, "unterminated string"},
		{"unterminated_single", `exists('abc)`, "unterminated string"},
		{"unterminated_escape", `exists("abc\`, "unterminated escape"},
		{"unterminated_raw", `exists(r"abc)`, "unterminated raw string"},
		{"empty_bare", "exists()", "expected string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expr.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tt.contains)
			assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
			assert.Contains(t, errors.GetErrorDetails(err), "offset")
		})
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	inputs := []string{
		`env(CI) && !env(NODE_ENV="production") || exists(r"**/*.rs")`,
		`!(lang(go) || lang("rust")) && exists("a \"b\"")`,
	}
	for _, in := range inputs {
		first, err := expr.Parse(in)
		require.NoError(t, err)
		second, err := expr.Parse(first.String())
		require.NoError(t, err, "reparsing %q", first.String())
		assert.Equal(t, first, second)
	}
}

func TestMatchers(t *testing.T) {
	e, err := expr.Parse(`exists("a") && (env(B) || !lang(go))`)
	require.NoError(t, err)

	assert.Equal(t, []expr.Matcher{
		expr.Exists{Pattern: "a"},
		expr.EnvExists{Name: "B"},
		expr.Lang{Name: "go"},
	}, expr.Matchers(e))
}
