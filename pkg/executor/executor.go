package executor

import (
	stderrors "errors"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/paths"
	"github.com/arthur-debert/pkgprune/pkg/planner"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Options contains configuration for the executor
type Options struct {
	// FS defaults to the OS filesystem.
	FS types.FS
	// Logger defaults to the "executor" component logger.
	Logger *zerolog.Logger
}

// Executor removes planned targets.
type Executor struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	return &Executor{
		fs:     fsys,
		logger: logger,
	}
}

// Execute attempts every target of set in order and reports the outcome
// of each. It never returns early.
func (e *Executor) Execute(set *planner.RemovalSet) *Report {
	report := &Report{}
	if set == nil {
		return report
	}
	report.BasePath = set.BasePath
	report.Results = make([]Result, 0, set.Len())

	for _, target := range set.Targets() {
		report.Results = append(report.Results, e.remove(set.BasePath, target))
	}

	e.logger.Debug().
		Str("base", set.BasePath).
		Int("removed", report.Removed()).
		Int("failed", report.Count(OutcomeFailed)).
		Msg("Removal pass finished")
	return report
}

func (e *Executor) remove(base string, target planner.Target) Result {
	result := Result{
		Path:    target.Path,
		RelPath: target.RelPath,
		Kind:    target.Kind,
		Source:  target.Source,
	}
	log := e.logger.With().
		Str("path", target.Path).
		Str("kind", target.Kind.String()).
		Logger()

	if err := paths.CheckContained(base, target.Path); err != nil {
		log.Warn().Err(err).Msg("Refusing to remove path outside the base path")
		return result.fail(OutcomeRefused, err)
	}

	if _, err := e.fs.Lstat(target.Path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			log.Trace().Msg("Path already gone")
			result.Outcome = OutcomeVanished
			return result
		}
		log.Debug().Err(err).Msg("Cannot inspect path")
		return result.fail(OutcomeFailed, errors.Wrapf(err, errors.ErrRemoveFailed, "cannot inspect %s", target.Path))
	}

	var err error
	switch target.Kind {
	case types.RemoveFile:
		err = e.fs.Remove(target.Path)
	default:
		err = e.fs.RemoveAll(target.Path)
	}
	if err != nil {
		log.Debug().Err(err).Msg("Removal failed")
		return result.fail(OutcomeFailed, errors.Wrapf(err, errors.ErrRemoveFailed, "failed to remove %s", target.Path))
	}

	log.Trace().Msg("Removed")
	result.Outcome = OutcomeRemoved
	return result
}

func (r Result) fail(outcome Outcome, err error) Result {
	r.Outcome = outcome
	r.Err = err
	r.Error = err.Error()
	return r
}
