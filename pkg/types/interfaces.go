package types

import (
	"io/fs"
)

// FS is the filesystem capability the cleanup engine runs against.
// Production code uses the OS implementation; tests use an in-memory one.
type FS interface {
	// Stat follows symlinks.
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow symlinks.
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)

	// EvalSymlinks returns the canonical absolute form of name with every
	// symlink resolved. It fails if name does not exist.
	EvalSymlinks(name string) (string, error)

	// Writable reports whether the current process may write to name.
	Writable(name string) bool

	// Remove unlinks a file or an empty directory.
	Remove(name string) error
	// RemoveAll removes name and everything below it.
	RemoveAll(path string) error
}
