// Package composer locates a Composer project and lists the packages
// installed in its vendor directory.
//
// Only the files Composer writes are read: the root manifest and
// <vendor>/composer/installed.json. Both the legacy top-level array and
// the current {"packages": [...]} layout of installed.json are accepted.
package composer

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Environment variables honoured the same way Composer does.
const (
	EnvManifest  = "COMPOSER"
	EnvVendorDir = "COMPOSER_VENDOR_DIR"
)

const (
	DefaultManifest  = "composer.json"
	DefaultVendorDir = "vendor"

	metadataDir   = "composer"
	installedJSON = "installed.json"
	defaultType   = "library"
)

// Project is a located Composer project.
type Project struct {
	// Dir is the directory holding the manifest.
	Dir          string
	ManifestPath string
	// VendorDir is absolute.
	VendorDir string
}

// InstalledPath is the location of installed.json.
func (p *Project) InstalledPath() string {
	return filepath.Join(p.VendorDir, metadataDir, installedJSON)
}

// InstallPath resolves the install-path recorded for a package. Relative
// paths are relative to the vendor metadata directory; an empty path
// falls back to <vendor>/<name>.
func (p *Project) InstallPath(name, installPath string) string {
	switch {
	case installPath == "":
		return filepath.Join(p.VendorDir, filepath.FromSlash(name))
	case filepath.IsAbs(installPath):
		return filepath.Clean(installPath)
	default:
		return filepath.Join(p.VendorDir, metadataDir, filepath.FromSlash(installPath))
	}
}

// Options contains configuration for the locator
type Options struct {
	// FS defaults to the OS filesystem.
	FS types.FS
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Logger defaults to the "composer" component logger.
	Logger *zerolog.Logger
}

// Locator finds projects and their installed packages.
type Locator struct {
	fs     types.FS
	getenv func(string) string
	logger zerolog.Logger
}

// New creates a new locator instance
func New(opts Options) *Locator {
	logger := logging.GetLogger("composer")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Locator{fs: fsys, getenv: getenv, logger: logger}
}

// Locate reads the project manifest for workingDir. The manifest name
// comes from $COMPOSER when set.
func (l *Locator) Locate(workingDir string) (*Project, error) {
	manifest := l.getenv(EnvManifest)
	if manifest == "" {
		manifest = DefaultManifest
	}
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(workingDir, manifest)
	}

	data, err := l.fs.ReadFile(manifest)
	if err != nil {
		code := errors.ErrManifestRead
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot read manifest %s", manifest).
			WithDetail("path", manifest)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.Newf(errors.ErrManifestParse, "manifest %s is not valid JSON", manifest).
			WithDetail("path", manifest)
	}

	project := &Project{
		Dir:          filepath.Dir(manifest),
		ManifestPath: manifest,
	}
	project.VendorDir = l.vendorDir(project.Dir, data)

	l.logger.Debug().
		Str("manifest", manifest).
		Str("vendor", project.VendorDir).
		Msg("Located project")
	return project, nil
}

func (l *Locator) vendorDir(projectDir string, manifest []byte) string {
	dir := l.getenv(EnvVendorDir)
	if dir == "" {
		dir = gjson.GetBytes(manifest, `config.vendor-dir`).String()
	}
	if dir == "" {
		dir = DefaultVendorDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectDir, filepath.FromSlash(dir))
	}
	return filepath.Clean(dir)
}

// InstalledPackages lists the packages recorded in installed.json with
// their install paths resolved against the vendor directory. A missing
// installed.json means nothing is installed.
func (l *Locator) InstalledPackages(project *Project) ([]types.Package, error) {
	path := project.InstalledPath()
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			l.logger.Info().Str("path", path).Msg("No installed packages recorded")
			return []types.Package{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "cannot read %s", path).
			WithDetail("path", path)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.Newf(errors.ErrManifestParse, "%s is not valid JSON", path).
			WithDetail("path", path)
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("packages")
	}
	if !list.IsArray() {
		return nil, errors.Newf(errors.ErrManifestParse, "%s has no package list", path).
			WithDetail("path", path)
	}

	packages := []types.Package{}
	list.ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name").String()
		if name == "" {
			l.logger.Debug().Str("path", path).Msg("Skipping installed entry without a name")
			return true
		}
		pkgType := entry.Get("type").String()
		if pkgType == "" {
			pkgType = defaultType
		}
		pkg := types.Package{Name: name, Type: pkgType}
		if pkgType != types.MetaPackageType {
			pkg.InstallPath = project.InstallPath(name, entry.Get("install-path").String())
		}
		packages = append(packages, pkg)
		return true
	})

	l.logger.Debug().Int("count", len(packages)).Msg("Loaded installed packages")
	return packages, nil
}
