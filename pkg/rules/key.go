package rules

import (
	"strings"

	"github.com/arthur-debert/pkgprune/pkg/errors"
)

// Configuration key names.
const (
	KeyFnmatch          = "fnmatch"
	KeyFnmatchFile      = "fnmatch-file"
	KeyFnmatchDirectory = "fnmatch-directory"
	KeyRegexp           = "regexp"
	KeyRegexpFile       = "regexp-file"
	KeyRegexpDirectory  = "regexp-directory"

	suffixFile      = "file"
	suffixDirectory = "directory"
)

// Key is a parsed rule key.
type Key struct {
	Kind       MatcherKind
	Constraint TypeConstraint
}

// PriorityOrder is the fixed order in which rule keys are evaluated.
var PriorityOrder = [...]Key{
	{Glob, AnyExisting},
	{Glob, FileOnly},
	{Glob, DirectoryOnly},
	{Regexp, AnyExisting},
	{Regexp, FileOnly},
	{Regexp, DirectoryOnly},
}

// String returns the configuration key name.
func (k Key) String() string {
	if k.Constraint == AnyExisting {
		return k.Kind.String()
	}
	return k.Kind.String() + "-" + k.Constraint.String()
}

// ParseKey turns a configuration key such as "regexp-file" into a Key.
func ParseKey(name string) (Key, error) {
	parts := strings.Split(name, "-")
	if len(parts) > 2 {
		return Key{}, invalidKey(name, "too many segments")
	}

	var key Key
	switch parts[0] {
	case KeyFnmatch:
		key.Kind = Glob
	case KeyRegexp:
		key.Kind = Regexp
	default:
		return Key{}, invalidKey(name, "unknown matcher "+parts[0])
	}

	if len(parts) == 1 {
		key.Constraint = AnyExisting
		return key, nil
	}

	switch parts[1] {
	case suffixFile:
		key.Constraint = FileOnly
	case suffixDirectory:
		key.Constraint = DirectoryOnly
	default:
		return Key{}, invalidKey(name, "unknown entry type "+parts[1])
	}
	return key, nil
}

// LooksLikeRuleKey reports whether name claims to be a rule key, i.e. a
// config key that must parse or be rejected rather than ignored.
func LooksLikeRuleKey(name string) bool {
	return strings.HasPrefix(name, KeyFnmatch) || strings.HasPrefix(name, KeyRegexp)
}

func invalidKey(name, reason string) error {
	return errors.Newf(errors.ErrRuleKeyInvalid, "invalid rule key %q: %s", name, reason).
		WithDetail("key", name)
}
