// Package walker enumerates the entries below a base directory in
// child-first order, so a directory is always seen after its contents.
package walker

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Entry is one file or directory found below the base path.
type Entry struct {
	// Path is the absolute path as reached by the traversal (symlinks in
	// the final element are not resolved).
	Path string
	// RelPath is Path relative to the base, always "/"-separated.
	RelPath string
	Type    types.EntryType
}

// IsDir reports whether the entry is a directory (or a link to one).
func (e Entry) IsDir() bool {
	return e.Type == types.EntryDirectory
}

// Walker traverses a directory tree on an injected filesystem.
type Walker struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a walker over fsys.
func New(fsys types.FS) *Walker {
	return &Walker{
		fs:     fsys,
		logger: logging.GetLogger("walker"),
	}
}

// Walk yields every writable file and directory below base, depth-first
// with children before their parent. Entries that are neither a regular
// file nor a directory after following links are skipped, as are broken
// links. Linked directories are yielded but not descended into.
// Each call starts a fresh traversal.
func (w *Walker) Walk(base string) iter.Seq[Entry] {
	base = filepath.Clean(base)
	return func(yield func(Entry) bool) {
		w.walkDir(base, base, yield)
	}
}

// walkDir returns false once the consumer has stopped.
func (w *Walker) walkDir(base, dir string, yield func(Entry) bool) bool {
	children, err := w.fs.ReadDir(dir)
	if err != nil {
		w.logger.Debug().Err(err).Str("dir", dir).Msg("Unable to read directory, skipping subtree")
		return true
	}

	for _, child := range children {
		name := child.Name()
		if name == "." || name == ".." {
			continue
		}
		path := filepath.Join(dir, name)

		info, err := w.fs.Stat(path)
		if err != nil {
			w.logger.Trace().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			continue
		}

		var entryType types.EntryType
		switch {
		case info.IsDir():
			entryType = types.EntryDirectory
		case info.Mode().IsRegular():
			entryType = types.EntryFile
		default:
			continue
		}

		if entryType == types.EntryDirectory && !isLink(child) {
			if !w.walkDir(base, path, yield) {
				return false
			}
		}

		if !w.fs.Writable(path) {
			w.logger.Trace().Str("path", path).Msg("Skipping read-only entry")
			continue
		}

		rel, ok := relative(base, path)
		if !ok {
			w.logger.Warn().Str("path", path).Str("base", base).Msg("Traversal left the base path")
			continue
		}

		if !yield(Entry{Path: path, RelPath: rel, Type: entryType}) {
			return false
		}
	}
	return true
}

func isLink(entry fs.DirEntry) bool {
	return entry.Type()&fs.ModeSymlink != 0
}

// relative re-checks that path has base as a literal prefix and strips it.
func relative(base, path string) (string, bool) {
	if !strings.HasPrefix(path, base) {
		return "", false
	}
	rel := strings.TrimLeft(path[len(base):], string(filepath.Separator))
	if rel == "" {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
