// Test Type: Unit Test
// Description: Tests for RuleSet compilation, type constraints and priority

package rules_test

import (
	"testing"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/rules"
	"github.com/arthur-debert/pkgprune/pkg/testutil"
	"github.com/arthur-debert/pkgprune/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(t *testing.T, name string) rules.Key {
	t.Helper()
	k, err := rules.ParseKey(name)
	require.NoError(t, err)
	return k
}

func TestTypeConstraint_Satisfied(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("pkg", testutil.Tree{
		"test.txt": "x",
		"tests/":   "",
	})
	file := env.Path("pkg/test.txt")
	dir := env.Path("pkg/tests")
	missing := env.Path("pkg/missing")

	assert.True(t, rules.AnyExisting.Satisfied(env.FS, file))
	assert.True(t, rules.AnyExisting.Satisfied(env.FS, dir))
	assert.False(t, rules.AnyExisting.Satisfied(env.FS, missing))

	assert.True(t, rules.FileOnly.Satisfied(env.FS, file))
	assert.False(t, rules.FileOnly.Satisfied(env.FS, dir))

	assert.True(t, rules.DirectoryOnly.Satisfied(env.FS, dir))
	assert.False(t, rules.DirectoryOnly.Satisfied(env.FS, file))

	assert.Equal(t, types.RemoveFile, rules.FileOnly.RemovalKind())
	assert.Equal(t, types.RemoveDirectory, rules.DirectoryOnly.RemovalKind())
	assert.Equal(t, types.RemoveAny, rules.AnyExisting.RemovalKind())
}

func TestCompile_OrdersByPriority(t *testing.T) {
	set, err := rules.Compile(map[rules.Key][]string{
		key(t, "regexp-directory"):  {"^c"},
		key(t, "regexp"):            {"^b1", "^b2"},
		key(t, "fnmatch-directory"): {"a*"},
		key(t, "fnmatch"):           {"z", "y"},
	})
	require.NoError(t, err)

	var got []string
	for _, r := range set.Rules() {
		got = append(got, r.String())
	}
	assert.Equal(t, []string{
		"fnmatch:z",
		"fnmatch:y",
		"fnmatch-directory:a*",
		"regexp:^b1",
		"regexp:^b2",
		"regexp-directory:^c",
	}, got)
	assert.Equal(t, 6, set.Len())
	assert.False(t, set.Empty())
}

func TestCompile_Empty(t *testing.T) {
	set, err := rules.Compile(nil)
	require.NoError(t, err)
	assert.True(t, set.Empty())

	var nilSet *rules.RuleSet
	assert.True(t, nilSet.Empty())
	_, ok := nilSet.Match(testutil.NewTestFS(), "a", "/a")
	assert.False(t, ok)
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := rules.Compile(map[rules.Key][]string{
		key(t, "fnmatch"):     {"*.md"},
		key(t, "regexp-file"): {"(broken"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Equal(t, "regexp-file", errors.GetErrorDetails(err)["key"])
}

func TestRuleSet_Match(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("pkg", testutil.Tree{
		"test.txt":      "x",
		"tests/":        "",
		"testdata/":     "",
		"docs/index.md": "# docs",
	})
	abs := func(rel string) string { return env.Path("pkg/" + rel) }

	t.Run("directory_constraint_skips_files", func(t *testing.T) {
		set, err := rules.Compile(map[rules.Key][]string{
			key(t, "fnmatch-directory"): {"test*"},
		})
		require.NoError(t, err)

		_, ok := set.Match(env.FS, "test.txt", abs("test.txt"))
		assert.False(t, ok)

		rule, ok := set.Match(env.FS, "tests", abs("tests"))
		assert.True(t, ok)
		assert.Equal(t, rules.DirectoryOnly, rule.Key.Constraint)

		_, ok = set.Match(env.FS, "testdata", abs("testdata"))
		assert.True(t, ok)
	})

	t.Run("file_constraint_skips_directories", func(t *testing.T) {
		set, err := rules.Compile(map[rules.Key][]string{
			key(t, "regexp-file"): {"^test"},
		})
		require.NoError(t, err)

		_, ok := set.Match(env.FS, "tests", abs("tests"))
		assert.False(t, ok)
		_, ok = set.Match(env.FS, "test.txt", abs("test.txt"))
		assert.True(t, ok)
	})

	t.Run("fnmatch_family_wins_over_regexp", func(t *testing.T) {
		set, err := rules.Compile(map[rules.Key][]string{
			key(t, "regexp"):  {`\.md$`},
			key(t, "fnmatch"): {"docs/*.md"},
		})
		require.NoError(t, err)

		rule, ok := set.Match(env.FS, "docs/index.md", abs("docs/index.md"))
		require.True(t, ok)
		assert.Equal(t, rules.Glob, rule.Key.Kind)
		assert.Equal(t, "docs/*.md", rule.Pattern.String())
	})

	t.Run("falls_through_when_constraint_fails", func(t *testing.T) {
		set, err := rules.Compile(map[rules.Key][]string{
			key(t, "fnmatch-file"): {"tests"},
			key(t, "regexp"):       {"^tests$"},
		})
		require.NoError(t, err)

		rule, ok := set.Match(env.FS, "tests", abs("tests"))
		require.True(t, ok)
		assert.Equal(t, "regexp", rule.Key.String())
	})

	t.Run("missing_entry_never_matches", func(t *testing.T) {
		set, err := rules.Compile(map[rules.Key][]string{
			key(t, "fnmatch"): {"*"},
		})
		require.NoError(t, err)

		_, ok := set.Match(env.FS, "gone", abs("gone"))
		assert.False(t, ok)
	})
}
