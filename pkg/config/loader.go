package config

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// ManifestExtraKeys are the entries of the manifest's "extra" block that
// may hold the configuration, in lookup order. The prefixed form is the
// name used by the PHP plugin.
var ManifestExtraKeys = []string{"project-cleanup", "dragiyski-project-cleanup"}

// DedicatedFiles are the per-project configuration files, in lookup order.
var DedicatedFiles = []string{
	".project-cleanup.json",
	".project-cleanup.yaml",
	".project-cleanup.yml",
	".project-cleanup.toml",
	".dragiyski-project-cleanup.json",
}

// Loader discovers and decodes configuration through an injected FS.
type Loader struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys types.FS) *Loader {
	return &Loader{
		fs:     fsys,
		logger: logging.GetLogger("config.loader"),
	}
}

// LoadProject finds the project configuration. A dedicated file in dir wins
// when it is readable, parseable and non-empty; otherwise the manifest's
// extra block is used. When neither yields an object the returned project
// is nil, meaning there is nothing to do.
func (l *Loader) LoadProject(dir, manifestPath string) (*Project, error) {
	raw, source := l.loadDedicated(dir)
	if raw == nil && manifestPath != "" {
		raw, source = l.loadManifestExtra(manifestPath)
	}
	if raw == nil {
		l.logger.Info().Str("dir", dir).Msg("No cleanup configuration found, nothing to clean")
		return nil, nil
	}

	l.logger.Debug().Str("source", source).Msg("Loaded cleanup configuration")
	return DecodeProject(raw, source)
}

// LoadCleanupFile reads a standalone cleanup config whose top level is the
// rule object itself.
func (l *Loader) LoadCleanupFile(path string) (Cleanup, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return Cleanup{}, errors.Wrapf(err, errors.ErrNotFound, "cannot read config file %s", path)
	}
	raw, err := ParseBytes(data, path)
	if err != nil {
		return Cleanup{}, err
	}
	return DecodeCleanup(raw)
}

func (l *Loader) loadDedicated(dir string) (map[string]any, string) {
	for _, name := range DedicatedFiles {
		path := filepath.Join(dir, name)
		data, err := l.fs.ReadFile(path)
		if err != nil {
			continue
		}
		raw, err := ParseBytes(data, path)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("Ignoring unparsable configuration file")
			continue
		}
		if len(raw) == 0 {
			l.logger.Debug().Str("path", path).Msg("Ignoring empty configuration file")
			continue
		}
		return raw, path
	}
	return nil, ""
}

func (l *Loader) loadManifestExtra(manifestPath string) (map[string]any, string) {
	data, err := l.fs.ReadFile(manifestPath)
	if err != nil {
		l.logger.Debug().Err(err).Str("path", manifestPath).Msg("Manifest not readable")
		return nil, ""
	}
	raw, err := ParseBytes(data, manifestPath)
	if err != nil {
		l.logger.Warn().Err(err).Str("path", manifestPath).Msg("Manifest is not valid JSON")
		return nil, ""
	}

	extra, ok := raw["extra"].(map[string]any)
	if !ok {
		return nil, ""
	}
	for _, key := range ManifestExtraKeys {
		value, present := extra[key]
		if !present {
			continue
		}
		section, ok := value.(map[string]any)
		if !ok {
			l.logger.Warn().
				Str("path", manifestPath).
				Str("key", key).
				Msg("Manifest configuration is not an object, ignoring it")
			continue
		}
		if len(section) == 0 {
			continue
		}
		return section, manifestPath + "#extra." + key
	}
	return nil, ""
}
