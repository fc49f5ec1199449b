package planner

import (
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Target is one path selected for removal.
type Target struct {
	// Path is absolute and lies strictly below the set's base path.
	Path string `json:"path"`
	// RelPath is Path relative to the base, "/"-separated.
	RelPath string            `json:"relPath"`
	Kind    types.RemovalKind `json:"kind"`
	// Source names the config entry or rule that selected the path,
	// e.g. "file:README.md" or "fnmatch-directory:test*".
	Source string `json:"source"`
}

// RemovalSet is the deduplicated list of targets for one base path, in
// the order they were selected.
type RemovalSet struct {
	BasePath string

	targets []Target
	index   map[string]struct{}
}

// NewRemovalSet creates an empty set for base.
func NewRemovalSet(base string) *RemovalSet {
	return &RemovalSet{
		BasePath: base,
		index:    make(map[string]struct{}),
	}
}

// Add appends t unless its path is already present. It reports whether t
// was added.
func (s *RemovalSet) Add(t Target) bool {
	if _, ok := s.index[t.Path]; ok {
		return false
	}
	s.index[t.Path] = struct{}{}
	s.targets = append(s.targets, t)
	return true
}

// Len returns the number of targets.
func (s *RemovalSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.targets)
}

// Targets returns a copy of the targets in selection order.
func (s *RemovalSet) Targets() []Target {
	if s == nil {
		return nil
	}
	return append([]Target(nil), s.targets...)
}

// Paths returns the absolute target paths in selection order.
func (s *RemovalSet) Paths() []string {
	out := make([]string, 0, s.Len())
	for _, t := range s.Targets() {
		out = append(out, t.Path)
	}
	return out
}
