// Test Type: Unit Test
// Description: Tests for decoding a single cleanup rule object

package config_test

import (
	"testing"

	"github.com/arthur-debert/pkgprune/pkg/config"
	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCleanup_AllKeys(t *testing.T) {
	raw := map[string]any{
		"file":              []any{"README.md"},
		"directory":         []any{"tests"},
		"path":              []any{"docs"},
		"fnmatch":           []any{"*.md"},
		"fnmatch-file":      []any{"*.dist"},
		"fnmatch-directory": []any{".github"},
		"regexp":            []any{"/^x/"},
		"regexp-file":       []any{"#\\.yml$#"},
		"regexp-directory":  []any{"~^build$~"},
	}

	c, err := config.DecodeCleanup(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md"}, c.File)
	assert.Equal(t, []string{"tests"}, c.Directory)
	assert.Equal(t, []string{"docs"}, c.Path)
	assert.True(t, c.HasPatterns())
	assert.False(t, c.IsEmpty())

	patterns := c.Patterns()
	assert.Len(t, patterns, 6)
	assert.Equal(t, []string{".github"}, patterns[rules.Key{Kind: rules.Glob, Constraint: rules.DirectoryOnly}])
	assert.Equal(t, []string{"~^build$~"}, patterns[rules.Key{Kind: rules.Regexp, Constraint: rules.DirectoryOnly}])

	set, err := c.Rules()
	require.NoError(t, err)
	assert.Equal(t, 6, set.Len())
}

func TestDecodeCleanup_ScalarBecomesList(t *testing.T) {
	c, err := config.DecodeCleanup(map[string]any{"file": "README.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, c.File)
}

func TestDecodeCleanup_Empty(t *testing.T) {
	c, err := config.DecodeCleanup(map[string]any{})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.False(t, c.HasPatterns())

	set, err := c.Rules()
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestDecodeCleanup_UnknownKeysIgnored(t *testing.T) {
	c, err := config.DecodeCleanup(map[string]any{
		"comment": "not a rule",
		"file":    []any{"a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, c.File)
}

func TestDecodeCleanup_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		code errors.ErrorCode
	}{
		{"unknown_entry_type", map[string]any{"fnmatch-dir": []any{"x"}}, errors.ErrRuleKeyInvalid},
		{"unknown_matcher", map[string]any{"fnmatchy": []any{"x"}}, errors.ErrRuleKeyInvalid},
		{"too_many_segments", map[string]any{"regexp-file-only": []any{"/x/"}}, errors.ErrRuleKeyInvalid},
		{"empty_file_entry", map[string]any{"file": []any{""}}, errors.ErrConfigInvalid},
		{"wrong_value_type", map[string]any{"directory": map[string]any{"a": 1}}, errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.DecodeCleanup(tt.raw)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
			assert.True(t, errors.IsConfigError(err))
		})
	}
}

func TestCleanup_ValidateReportsFirstInvalidEntryInKeyOrder(t *testing.T) {
	c := config.Cleanup{
		File:      []string{"ok", ""},
		Directory: []string{""},
		Path:      []string{"bad\x00path"},
	}

	// Repeat so an unordered walk over the keys would show up.
	for i := 0; i < 20; i++ {
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, "file", errors.GetErrorDetails(err)["key"])
	}

	c.File = []string{"ok"}
	err := c.Validate()
	require.Error(t, err)
	assert.Equal(t, "directory", errors.GetErrorDetails(err)["key"])
}

func TestCleanup_RulesInvalidPattern(t *testing.T) {
	c, err := config.DecodeCleanup(map[string]any{"regexp": []any{"/(unclosed/"}})
	require.NoError(t, err)

	_, err = c.Rules()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}
