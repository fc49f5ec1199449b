package config

import (
	"github.com/samber/lo"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/logging"
)

// Packages is the decoded "packages" section: default rules plus
// per-package exclusions and overrides.
type Packages struct {
	Default Cleanup
	// DefaultErr is set when the default rules are malformed. Only packages
	// that fall back to the default are affected.
	DefaultErr error

	Exclude []string
	// ExcludeErr is set when "exclude" is not a list of names. Which
	// packages it meant to protect is unknown, so every package reports it.
	ExcludeErr error

	Override map[string]Override
	// OverrideErr is set when "override" is not an object. Excluded
	// packages are unaffected.
	OverrideErr error
}

// Override is the replacement config for one package, or the reason it
// could not be decoded.
type Override struct {
	Cleanup Cleanup
	Err     error
}

// Project is a decoded project configuration.
type Project struct {
	// Packages is nil when the configuration has no "packages" section.
	Packages *Packages
	// Source names where the configuration was read from.
	Source string
}

// DecodeProject decodes a raw project configuration object.
func DecodeProject(raw map[string]any, source string) (*Project, error) {
	project := &Project{Source: source}
	section, ok := raw[KeyPackages]
	if !ok || section == nil {
		return project, nil
	}
	m, ok := section.(map[string]any)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigInvalid, "%q must be an object", KeyPackages).
			WithDetail("source", source)
	}
	pkgs, err := DecodePackages(m)
	if err != nil {
		return nil, err
	}
	project.Packages = pkgs
	return project, nil
}

// DecodePackages decodes the "packages" section. An error is returned only
// when the section cannot be decoded at all; problems local to the default
// rules, the control keys or one override are recorded and surface per
// package through For.
func DecodePackages(raw map[string]any) (*Packages, error) {
	controls := []string{KeyExclude, KeyOverride}
	logger := logging.GetLogger("config")

	pkgs := &Packages{}
	pkgs.Default, pkgs.DefaultErr = DecodeCleanup(lo.OmitByKeys(raw, controls))

	var exclude struct {
		Exclude []string `koanf:"exclude"`
	}
	if _, err := decode(lo.PickByKeys(raw, []string{KeyExclude}), &exclude); err != nil {
		pkgs.ExcludeErr = invalidControl(KeyExclude, "a list of package names", err)
		logger.Warn().Err(pkgs.ExcludeErr).Msg("Malformed exclude list, no package will be cleaned")
	} else {
		pkgs.Exclude = exclude.Exclude
	}

	var override struct {
		Override map[string]any `koanf:"override"`
	}
	if _, err := decode(lo.PickByKeys(raw, []string{KeyOverride}), &override); err != nil {
		pkgs.OverrideErr = invalidControl(KeyOverride, "an object", err)
		logger.Warn().Err(pkgs.OverrideErr).Msg("Malformed override section, no package will be cleaned")
		override.Override = nil
	}

	pkgs.Override = make(map[string]Override, len(override.Override))
	for name, value := range override.Override {
		switch v := value.(type) {
		case nil:
			// An explicit null is the same as no override.
			logger.Debug().Str("package", name).Msg("Ignoring null override")
		case map[string]any:
			c, err := DecodeCleanup(v)
			pkgs.Override[name] = Override{Cleanup: c, Err: err}
		case []any:
			if len(v) == 0 {
				pkgs.Override[name] = Override{}
				continue
			}
			pkgs.Override[name] = Override{Err: invalidOverride(name, value)}
		default:
			pkgs.Override[name] = Override{Err: invalidOverride(name, value)}
		}
	}

	return pkgs, nil
}

// For returns the effective config for a package. excluded is true when
// the package must not be touched at all.
func (p *Packages) For(name string) (cfg Cleanup, excluded bool, err error) {
	if p.ExcludeErr != nil {
		return Cleanup{}, false, p.ExcludeErr
	}
	if lo.Contains(p.Exclude, name) {
		return Cleanup{}, true, nil
	}
	if p.OverrideErr != nil {
		return Cleanup{}, false, p.OverrideErr
	}
	if o, ok := p.Override[name]; ok {
		return o.Cleanup, false, o.Err
	}
	return p.Default, false, p.DefaultErr
}

func invalidOverride(name string, value any) error {
	return errors.Newf(errors.ErrOverrideInvalid, "override for %s must be an object, got %T", name, value).
		WithDetail("package", name)
}

func invalidControl(key, want string, err error) error {
	return errors.Wrapf(err, errors.ErrConfigInvalid, "%q must be %s", key, want).
		WithDetail("key", key)
}
