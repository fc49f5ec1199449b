package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgprune/pkg/errors"
)

// ValidatePath rejects config entries that can never name a real path.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// Contains reports whether target lies strictly below base. Both paths are
// compared lexically; callers canonicalize first.
func Contains(base, target string) bool {
	if base == "" || target == "" {
		return false
	}
	base = filepath.Clean(base)
	target = filepath.Clean(target)
	if target == base {
		return false
	}
	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(target, prefix)
}

// CheckContained is Contains as an error, for logs and reports.
func CheckContained(base, target string) error {
	if Contains(base, target) {
		return nil
	}
	return errors.Newf(errors.ErrPathOutsideBase, "path %s is outside %s", target, base).
		WithDetail("path", target).
		WithDetail("base", base)
}

// Relative returns target relative to base with "/" separators, or "" when
// target is not below base.
func Relative(base, target string) string {
	if !Contains(base, target) {
		return ""
	}
	rel := strings.TrimPrefix(filepath.Clean(target), filepath.Clean(base))
	rel = strings.TrimLeft(rel, string(filepath.Separator))
	return filepath.ToSlash(rel)
}
