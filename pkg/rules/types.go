package rules

import (
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// MatcherKind selects the pattern dialect of a rule.
type MatcherKind int

const (
	Glob MatcherKind = iota
	Regexp
)

func (k MatcherKind) String() string {
	if k == Regexp {
		return KeyRegexp
	}
	return KeyFnmatch
}

// TypeConstraint restricts which entry types a rule may match.
type TypeConstraint int

const (
	// AnyExisting only requires the entry to exist.
	AnyExisting TypeConstraint = iota
	FileOnly
	DirectoryOnly
)

func (c TypeConstraint) String() string {
	switch c {
	case FileOnly:
		return suffixFile
	case DirectoryOnly:
		return suffixDirectory
	default:
		return "any"
	}
}

// Satisfied checks the constraint against the current state of absPath.
// Symlinks are followed, so a link to a directory counts as a directory.
func (c TypeConstraint) Satisfied(fsys types.FS, absPath string) bool {
	info, err := fsys.Stat(absPath)
	if err != nil {
		return false
	}
	switch c {
	case FileOnly:
		return info.Mode().IsRegular()
	case DirectoryOnly:
		return info.IsDir()
	default:
		return true
	}
}

// RemovalKind is the removal primitive suited to entries this constraint admits.
func (c TypeConstraint) RemovalKind() types.RemovalKind {
	switch c {
	case FileOnly:
		return types.RemoveFile
	case DirectoryOnly:
		return types.RemoveDirectory
	default:
		return types.RemoveAny
	}
}

// Pattern is a compiled rule pattern tested against a relative path.
type Pattern interface {
	MatchString(rel string) bool
	String() string
}

// Rule is one compiled pattern under one key.
type Rule struct {
	Key     Key
	Pattern Pattern
}

// Matches reports whether the pattern accepts rel and the entry at abs
// satisfies the key's type constraint.
func (r Rule) Matches(fsys types.FS, rel, abs string) bool {
	return r.Pattern.MatchString(rel) && r.Key.Constraint.Satisfied(fsys, abs)
}

func (r Rule) String() string {
	return r.Key.String() + ":" + r.Pattern.String()
}
