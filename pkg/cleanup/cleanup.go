// Package cleanup runs the planner and executor over every installed
// package of a project.
//
// Packages are handled one at a time. A package is skipped when it is
// excluded, when its effective configuration is invalid, when it is a
// metapackage, or when its install path cannot be resolved. Skipping is
// always preferred over guessing.
package cleanup

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/pkgprune/pkg/config"
	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/executor"
	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/planner"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Options contains configuration for the cleaner
type Options struct {
	// FS defaults to the OS filesystem.
	FS types.FS
	// Logger defaults to the "cleanup" component logger.
	Logger *zerolog.Logger
}

// Cleaner cleans packages.
type Cleaner struct {
	fs       types.FS
	planner  *planner.Planner
	executor *executor.Executor
	logger   zerolog.Logger
}

// New creates a new cleaner instance
func New(opts Options) *Cleaner {
	logger := logging.GetLogger("cleanup")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Cleaner{
		fs:       fs,
		planner:  planner.New(planner.Options{FS: fs}),
		executor: executor.New(executor.Options{FS: fs}),
		logger:   logger,
	}
}

// CleanPackages cleans every package with the rules in pkgs. A nil pkgs
// means there is nothing configured and the summary is empty.
func (c *Cleaner) CleanPackages(pkgs *config.Packages, packages []types.Package) *Summary {
	summary := &Summary{Packages: []PackageResult{}}
	if pkgs == nil {
		c.logger.Info().Msg("No package rules configured, nothing to clean")
		return summary
	}

	done := logging.LogOperationStart(c.logger, "clean packages")
	defer done()

	for _, pkg := range packages {
		summary.Packages = append(summary.Packages, c.CleanPackage(pkgs, pkg))
	}
	return summary
}

// CleanPackage cleans one package.
func (c *Cleaner) CleanPackage(pkgs *config.Packages, pkg types.Package) PackageResult {
	result := PackageResult{Package: pkg}
	log := c.logger.With().Str("package", pkg.Name).Logger()

	cfg, excluded, err := pkgs.For(pkg.Name)
	switch {
	case excluded:
		log.Debug().Msg("Package excluded")
		result.Status = StatusExcluded
		return result
	case err != nil:
		log.Error().Err(err).Msg("Invalid cleanup configuration, skipping package")
		return result.failed(StatusConfigError, err)
	case pkg.IsMeta():
		log.Debug().Msg("Metapackage has no files, skipping")
		result.Status = StatusMetapackage
		return result
	}

	base, err := c.resolveInstallPath(pkg)
	if err != nil {
		log.Info().Err(err).Msg("Cannot resolve install path, skipping package")
		return result.failed(StatusUnresolved, err)
	}
	result.InstallPath = base

	report, err := c.CleanDir(base, cfg)
	if err != nil {
		if errors.IsConfigError(err) {
			log.Error().Err(err).Msg("Invalid cleanup configuration, skipping package")
			return result.failed(StatusConfigError, err)
		}
		log.Info().Err(err).Msg("Cannot clean install path, skipping package")
		return result.failed(StatusUnresolved, err)
	}

	result.Status = StatusCleaned
	result.Report = report
	log.Debug().Int("removed", report.Removed()).Msg("Package cleaned")
	return result
}

// CleanDir plans and executes cfg against one base directory. Only
// configuration errors and an unresolvable base are returned.
func (c *Cleaner) CleanDir(base string, cfg config.Cleanup) (*executor.Report, error) {
	if cfg.IsEmpty() {
		return &executor.Report{BasePath: base, Results: []executor.Result{}}, nil
	}
	set, err := c.planner.Plan(base, cfg)
	if err != nil {
		return nil, err
	}
	return c.executor.Execute(set), nil
}

func (c *Cleaner) resolveInstallPath(pkg types.Package) (string, error) {
	if pkg.InstallPath == "" {
		return "", errors.Newf(errors.ErrInstallPath, "package %s has no install path", pkg.Name).
			WithDetail("package", pkg.Name)
	}
	resolved, err := c.fs.EvalSymlinks(pkg.InstallPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInstallPath, "cannot resolve install path of %s", pkg.Name).
			WithDetail("package", pkg.Name).
			WithDetail("path", pkg.InstallPath)
	}
	return resolved, nil
}

func (r PackageResult) failed(status Status, err error) PackageResult {
	r.Status = status
	r.Err = err
	r.Error = err.Error()
	return r
}
