// Test Type: Unit Test
// Description: Tests for regexp patterns, including delimited forms

package rules_test

import (
	"testing"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexpPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"anchored_prefix", "^tests?/", "tests/Unit/FooTest.php", true},
		{"anchored_prefix_singular", "^tests?/", "test/x", true},
		{"anchor_rejects_nested", "^tests?/", "src/tests/x", false},
		{"unanchored_suffix", `\.dist$`, "phpunit.xml.dist", true},
		{"unanchored_search", "fixture", "tests/fixtures/a.json", true},
		{"character_class", `^[A-Z]+\.md$`, "CHANGELOG.md", true},
		{"character_class_rejects", `^[A-Z]+\.md$`, "docs/CHANGELOG.md", false},
		{"bare_pattern_starting_with_dot", `.*\.md$`, "README.md", true},
		{"slash_delimited", `/^docs\//`, "docs/index.md", true},
		{"delimited_case_insensitive", "/^docs$/i", "DOCS", true},
		{"delimited_case_sensitive_by_default", "/^docs$/", "DOCS", false},
		{"hash_delimited", `#\.md$#`, "a/b.md", true},
		{"tilde_delimited_with_slash", "~^build/~", "build/out", true},
		{"lookahead", `^(?!src/).*\.txt$`, "notes.txt", true},
		{"lookahead_rejects", `^(?!src/).*\.txt$`, "src/notes.txt", false},
		{"extended_modifier", "/^ docs $/x", "docs", true},
		{"brace_delimited", "{^tests/}", "tests/a", true},
		{"paren_delimited_case_insensitive", "(^tests/)i", "TESTS/a", true},
		{"bracket_delimited", `[\.md$]`, "a/b.md", true},
		{"angle_delimited", "<^build/>", "build/out", true},
		{"angle_delimited_rejects", "<^build/>", "src/build/out", false},
		{"brace_delimited_with_quantifier", "{^a{2}$}", "aa", true},
		{"brace_delimited_escaped_closer", `{^a\}$}`, "a}", true},
		{"bare_groups_not_delimited", "(a)(b)", "ab", true},
		{"bare_group_alternation", "(foo|bar)", "bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := rules.CompilePattern(rules.Regexp, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.MatchString(tt.path))
			assert.Equal(t, tt.pattern, p.String())
		})
	}
}

func TestRegexpPattern_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"empty", ""},
		{"unbalanced_group", "(unclosed"},
		{"unknown_modifier", "/abc/q"},
		{"unbalanced_group_delimited", "/(abc/"},
		{"unknown_modifier_paired", "{abc}q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.CompilePattern(rules.Regexp, tt.pattern)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
		})
	}
}
