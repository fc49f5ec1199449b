// Test Type: Integration Test
// Description: Tests for removal planning against prepared directory trees

package planner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgprune/pkg/config"
	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/planner"
	"github.com/arthur-debert/pkgprune/pkg/testutil"
	"github.com/arthur-debert/pkgprune/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var packageTree = testutil.Tree{
	"README.md":                "readme",
	"README.dist":              "dist",
	"CHANGELOG.md":             "changes",
	"composer.json":            "{}",
	"src/Widget.php":           "<?php",
	"src/README.md":            "nested readme",
	"tests/WidgetTest.php":     "<?php",
	"tests/fixtures/a.json":    "{}",
	"testdata/sample.txt":      "sample",
	"test.txt":                 "not a directory",
	"docs/":                    "",
	".github/workflows/ci.yml": "on: push",
}

func relPaths(set *planner.RemovalSet) []string {
	var out []string
	for _, t := range set.Targets() {
		out = append(out, t.RelPath)
	}
	return out
}

func setup(t *testing.T) (*planner.Planner, *testutil.TestEnvironment, string) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	base := env.WriteTree("vendor/acme/widgets", packageTree)
	return planner.New(planner.Options{FS: env.FS}), env, base
}

func TestPlan_ExplicitFile(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{File: []string{"README.dist", "docs", "missing.txt"}})
	require.NoError(t, err)

	targets := set.Targets()
	require.Len(t, targets, 1)
	assert.Equal(t, filepath.Join(base, "README.dist"), targets[0].Path)
	assert.Equal(t, "README.dist", targets[0].RelPath)
	assert.Equal(t, types.RemoveFile, targets[0].Kind)
	assert.Equal(t, "file:README.dist", targets[0].Source)
}

func TestPlan_ExplicitDirectoryAndPath(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{
		Directory: []string{"tests", "README.md"},
		Path:      []string{"docs", "CHANGELOG.md", "nope"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tests", "docs", "CHANGELOG.md"}, relPaths(set))
	targets := set.Targets()
	assert.Equal(t, types.RemoveDirectory, targets[0].Kind)
	assert.Equal(t, types.RemoveAny, targets[1].Kind)
}

func TestPlan_Containment(t *testing.T) {
	p, env, base := setup(t)
	env.WriteTree("vendor/acme", testutil.Tree{"secret.txt": "keep"})
	env.WriteTree("vendor/acme/widgets-extra", testutil.Tree{"x": "keep"})

	set, err := p.Plan(base, config.Cleanup{
		File:      []string{"../secret.txt", "../widgets-extra/x", "src/../../secret.txt"},
		Directory: []string{"..", "../widgets-extra"},
		Path:      []string{".", "", "./"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestPlan_FnmatchDirectoryScenario(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{FnmatchDirectory: []string{"test*"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"tests", "testdata"}, relPaths(set))
	for _, target := range set.Targets() {
		assert.Equal(t, types.RemoveDirectory, target.Kind)
		assert.Equal(t, "fnmatch-directory:test*", target.Source)
	}
}

func TestPlan_TypeConstraints(t *testing.T) {
	p, _, base := setup(t)

	t.Run("file_rule_never_matches_directory", func(t *testing.T) {
		set, err := p.Plan(base, config.Cleanup{FnmatchFile: []string{"test*", "docs"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"test.txt"}, relPaths(set))
	})

	t.Run("directory_rule_never_matches_file", func(t *testing.T) {
		set, err := p.Plan(base, config.Cleanup{RegexpDirectory: []string{`#^test\w*$#`}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"tests", "testdata"}, relPaths(set))
	})

	t.Run("any_rule_matches_both", func(t *testing.T) {
		set, err := p.Plan(base, config.Cleanup{Fnmatch: []string{"test*"}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"tests", "testdata", "test.txt"}, relPaths(set))
	})
}

func TestPlan_PriorityFirstMatchWins(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{
		Fnmatch:    []string{"*.md"},
		Regexp:     []string{`/\.md$/`},
		RegexpFile: []string{`/README/`},
	})
	require.NoError(t, err)

	bySource := map[string]string{}
	for _, target := range set.Targets() {
		bySource[target.RelPath] = target.Source
	}
	assert.Equal(t, map[string]string{
		"README.md":     "fnmatch:*.md",
		"CHANGELOG.md":  "fnmatch:*.md",
		"src/README.md": `regexp:/\.md$/`,
		"README.dist":   "regexp-file:/README/",
	}, bySource)
}

func TestPlan_ChildFirstOrder(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{Regexp: []string{`/^tests/`}})
	require.NoError(t, err)

	got := relPaths(set)
	require.Len(t, got, 4)
	assert.Equal(t, "tests", got[len(got)-1])
}

func TestPlan_DeduplicatesExplicitAndPatterns(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{
		File:    []string{"README.md", "README.md"},
		Path:    []string{"README.md"},
		Fnmatch: []string{"README.*"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"README.md", "README.dist"}, relPaths(set))
	assert.Equal(t, "file:README.md", set.Targets()[0].Source)
}

func TestPlan_Precision(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{
		File:    []string{"README.dist"},
		Fnmatch: []string{"*.json"},
	})
	require.NoError(t, err)

	// tests/fixtures/a.json is two segments deep and must not match *.json.
	assert.ElementsMatch(t, []string{"README.dist", "composer.json"}, relPaths(set))
}

func TestPlan_DotfilesNeedExplicitDot(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{FnmatchDirectory: []string{"*"}})
	require.NoError(t, err)
	assert.NotContains(t, relPaths(set), ".github")

	set, err = p.Plan(base, config.Cleanup{FnmatchDirectory: []string{".git*"}})
	require.NoError(t, err)
	assert.Equal(t, []string{".github"}, relPaths(set))
}

func TestPlan_EmptyConfig(t *testing.T) {
	p, _, base := setup(t)

	set, err := p.Plan(base, config.Cleanup{})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Paths())
}

func TestPlan_InvalidPatternIsConfigError(t *testing.T) {
	p, _, base := setup(t)

	_, err := p.Plan(base, config.Cleanup{
		File:   []string{"README.md"},
		Regexp: []string{"/[unclosed/"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
	assert.True(t, errors.IsConfigError(err))
}

func TestPlan_MissingBase(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	p := planner.New(planner.Options{FS: env.FS})

	_, err := p.Plan(env.Path("vendor/none"), config.Cleanup{File: []string{"x"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolve))
	assert.False(t, errors.IsConfigError(err))
}

func TestPlan_SkipsReadOnlyPatternEntries(t *testing.T) {
	p, env, base := setup(t)
	env.Chmod("vendor/acme/widgets/README.md", 0444)

	set, err := p.Plan(base, config.Cleanup{Fnmatch: []string{"*.md"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"CHANGELOG.md"}, relPaths(set))
}

func TestPlan_SymlinkEscapes(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	base := env.WriteTree("vendor/acme/widgets", testutil.Tree{"README.md": "x"})
	outside := env.WriteTree("outside", testutil.Tree{"keep.txt": "keep", "dir/": ""})

	require.NoError(t, os.Symlink(filepath.Join(outside, "keep.txt"), filepath.Join(base, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "dir"), filepath.Join(base, "linkdir")))

	p := planner.New(planner.Options{FS: env.FS})
	set, err := p.Plan(base, config.Cleanup{
		File:      []string{"link.txt"},
		Directory: []string{"linkdir"},
		Path:      []string{"link.txt", "linkdir"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	// Pattern matches target the link itself, which lives inside the base.
	set, err = p.Plan(base, config.Cleanup{FnmatchDirectory: []string{"linkdir"}})
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, filepath.Join(base, "linkdir"), set.Targets()[0].Path)
}

func TestPlan_BaseThroughSymlinkIsCanonicalized(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	base := env.WriteTree("real", testutil.Tree{"README.md": "x"})
	link := env.Path("alias")
	require.NoError(t, os.Symlink(base, link))

	p := planner.New(planner.Options{FS: env.FS})
	set, err := p.Plan(link, config.Cleanup{File: []string{"README.md"}})
	require.NoError(t, err)

	assert.Equal(t, base, set.BasePath)
	assert.Equal(t, []string{filepath.Join(base, "README.md")}, set.Paths())
}
