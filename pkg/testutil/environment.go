// pkg/testutil/environment.go
// PURPOSE: Base directories with prepared content for engine tests

package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/types"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Tree maps slash-separated relative paths to file content. A key ending
// in "/" creates a directory.
type Tree map[string]string

// TestEnvironment is a root directory plus the filesystem it lives on.
type TestEnvironment struct {
	// Root is an absolute, canonical directory; package bases go below it.
	Root string

	FS      types.FS
	Backing afero.Fs
	Type    EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		root, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.Root = root
		env.Backing = afero.NewOsFs()
		env.FS = filesystem.NewOS()
	default:
		env.Root = filepath.FromSlash("/project")
		env.FS, env.Backing = NewTestFSWithBacking()
		if err := env.Backing.MkdirAll(env.Root, 0755); err != nil {
			t.Fatalf("Failed to create root: %v", err)
		}
	}
	return env
}

// Path joins slash-separated elements onto the root.
func (e *TestEnvironment) Path(elem ...string) string {
	parts := []string{e.Root}
	for _, el := range elem {
		parts = append(parts, filepath.FromSlash(el))
	}
	return filepath.Join(parts...)
}

// WriteTree creates tree below dir, which is relative to the root.
// It returns the absolute directory.
func (e *TestEnvironment) WriteTree(dir string, tree Tree) string {
	e.t.Helper()
	base := e.Path(dir)
	WriteTree(e.t, e.Backing, base, tree)
	return base
}

// Chmod changes the mode of a path relative to the root.
func (e *TestEnvironment) Chmod(rel string, mode os.FileMode) {
	e.t.Helper()
	if err := e.Backing.Chmod(e.Path(rel), mode); err != nil {
		e.t.Fatalf("Failed to chmod %s: %v", rel, err)
	}
}

// WriteTree creates every entry of tree below base on fs.
func WriteTree(t testing.TB, fs afero.Fs, base string, tree Tree) {
	t.Helper()

	if err := fs.MkdirAll(base, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", base, err)
	}

	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, rel := range keys {
		full := filepath.Join(base, filepath.FromSlash(strings.TrimSuffix(rel, "/")))
		if strings.HasSuffix(rel, "/") {
			if err := fs.MkdirAll(full, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", rel, err)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create parent of %s: %v", rel, err)
		}
		if err := afero.WriteFile(fs, full, []byte(tree[rel]), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

// AssertExists fails the test if path does not exist.
func AssertExists(t testing.TB, fsys types.FS, path string) {
	t.Helper()
	if _, err := fsys.Lstat(path); err != nil {
		t.Errorf("Expected %s to exist: %v", path, err)
	}
}

// AssertMissing fails the test if path exists.
func AssertMissing(t testing.TB, fsys types.FS, path string) {
	t.Helper()
	if _, err := fsys.Lstat(path); err == nil {
		t.Errorf("Expected %s to be removed", path)
	}
}

// Listing returns every path below base, relative and slash-separated,
// sorted. Useful for asserting the exact surviving tree.
func Listing(t testing.TB, fs afero.Fs, base string) []string {
	t.Helper()
	var out []string
	err := afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == base {
			return nil
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to list %s: %v", base, err)
	}
	sort.Strings(out)
	return out
}
