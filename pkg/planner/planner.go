// Package planner turns a cleanup configuration into the concrete set of
// paths to remove below one base path.
//
// Explicit entries (file, directory, path) are canonicalized relative to
// the base and dropped when they escape it. Pattern rules are evaluated
// against a single child-first walk of the tree, first match wins.
package planner

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/arthur-debert/pkgprune/pkg/config"
	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/paths"
	"github.com/arthur-debert/pkgprune/pkg/rules"
	"github.com/arthur-debert/pkgprune/pkg/types"
	"github.com/arthur-debert/pkgprune/pkg/walker"
)

// Options contains configuration for the planner
type Options struct {
	// FS defaults to the OS filesystem.
	FS types.FS
	// Logger defaults to the "planner" component logger.
	Logger *zerolog.Logger
}

// Planner builds removal sets.
type Planner struct {
	fs     types.FS
	walker *walker.Walker
	logger zerolog.Logger
}

// New creates a new planner instance
func New(opts Options) *Planner {
	logger := logging.GetLogger("planner")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Planner{
		fs:     fs,
		walker: walker.New(fs),
		logger: logger,
	}
}

// explicitEntry describes how one explicit list is resolved.
type explicitEntry struct {
	key     string
	entries []string
	kind    types.RemovalKind
}

// Plan computes the removal set for basePath. Only configuration errors
// are returned; entries that cannot be resolved or that escape the base
// are skipped. basePath is canonicalized first and must exist.
func (p *Planner) Plan(basePath string, cfg config.Cleanup) (*RemovalSet, error) {
	ruleSet, err := cfg.Rules()
	if err != nil {
		return nil, err
	}

	base, err := p.fs.EvalSymlinks(basePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPathResolve, "cannot resolve base path %s", basePath).
			WithDetail("path", basePath)
	}

	logger := p.logger.With().Str("base", base).Logger()
	logger.Debug().
		Strs("rules", lo.Map(ruleSet.Rules(), func(r rules.Rule, _ int) string { return r.String() })).
		Msg("Compiled cleanup rules")
	set := NewRemovalSet(base)

	for _, list := range []explicitEntry{
		{config.KeyFile, cfg.File, types.RemoveFile},
		{config.KeyDirectory, cfg.Directory, types.RemoveDirectory},
		{config.KeyPath, cfg.Path, types.RemoveAny},
	} {
		for _, entry := range list.entries {
			if target, ok := p.resolveExplicit(logger, base, list, entry); ok {
				set.Add(target)
			}
		}
	}

	if !ruleSet.Empty() {
		p.matchPatterns(logger, base, ruleSet, set)
	}

	logger.Debug().Int("targets", set.Len()).Msg("Removal plan built")
	return set, nil
}

// resolveExplicit canonicalizes one explicit entry and checks that it is
// contained in base and has the type the list requires.
func (p *Planner) resolveExplicit(logger zerolog.Logger, base string, list explicitEntry, entry string) (Target, bool) {
	log := logger.With().Str("key", list.key).Str("entry", entry).Logger()

	abs, err := p.fs.EvalSymlinks(filepath.Join(base, filepath.FromSlash(entry)))
	if err != nil {
		log.Debug().Err(err).Msg("Entry does not resolve, skipping")
		return Target{}, false
	}
	if err := paths.CheckContained(base, abs); err != nil {
		log.Debug().Err(err).Msg("Entry resolves outside the base path, skipping")
		return Target{}, false
	}

	info, err := p.fs.Stat(abs)
	if err != nil {
		log.Debug().Err(err).Msg("Entry vanished during planning, skipping")
		return Target{}, false
	}
	switch list.kind {
	case types.RemoveFile:
		if !info.Mode().IsRegular() {
			log.Debug().Msg("Entry is not a regular file, skipping")
			return Target{}, false
		}
	case types.RemoveDirectory:
		if !info.IsDir() {
			log.Debug().Msg("Entry is not a directory, skipping")
			return Target{}, false
		}
	}

	return Target{
		Path:    abs,
		RelPath: paths.Relative(base, abs),
		Kind:    list.kind,
		Source:  list.key + ":" + entry,
	}, true
}

// matchPatterns walks base once and adds every entry accepted by the first
// matching rule.
func (p *Planner) matchPatterns(logger zerolog.Logger, base string, ruleSet *rules.RuleSet, set *RemovalSet) {
	for entry := range p.walker.Walk(base) {
		rule, ok := ruleSet.Match(p.fs, entry.RelPath, entry.Path)
		if !ok {
			continue
		}
		if !paths.Contains(base, entry.Path) {
			logger.Debug().Str("path", entry.Path).Msg("Walked entry outside the base path, skipping")
			continue
		}
		added := set.Add(Target{
			Path:    entry.Path,
			RelPath: entry.RelPath,
			Kind:    rule.Key.Constraint.RemovalKind(),
			Source:  rule.String(),
		})
		if added {
			logger.Trace().Str("path", entry.RelPath).Str("rule", rule.String()).Msg("Entry matched")
		}
	}
}
