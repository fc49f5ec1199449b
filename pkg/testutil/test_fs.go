package testutil

import (
	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	fsys, _ := NewTestFSWithBacking()
	return fsys
}

// NewTestFSWithBacking also returns the afero backing store so tests can
// chmod or inspect entries directly.
func NewTestFSWithBacking() (types.FS, afero.Fs) {
	mem := afero.NewMemMapFs()
	return filesystem.NewAferoFS(mem), mem
}
