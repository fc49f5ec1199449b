package config

import (
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/paths"
	"github.com/arthur-debert/pkgprune/pkg/rules"
)

// Keys for the explicit removal lists and package-level controls.
const (
	KeyFile      = "file"
	KeyDirectory = "directory"
	KeyPath      = "path"
	KeyExclude   = "exclude"
	KeyOverride  = "override"
	KeyPackages  = "packages"
)

// Cleanup is the set of removal rules applied to one base path.
type Cleanup struct {
	File      []string `koanf:"file" json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	Directory []string `koanf:"directory" json:"directory,omitempty" yaml:"directory,omitempty" toml:"directory,omitempty"`
	Path      []string `koanf:"path" json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`

	Fnmatch          []string `koanf:"fnmatch" json:"fnmatch,omitempty" yaml:"fnmatch,omitempty" toml:"fnmatch,omitempty"`
	FnmatchFile      []string `koanf:"fnmatch-file" json:"fnmatch-file,omitempty" yaml:"fnmatch-file,omitempty" toml:"fnmatch-file,omitempty"`
	FnmatchDirectory []string `koanf:"fnmatch-directory" json:"fnmatch-directory,omitempty" yaml:"fnmatch-directory,omitempty" toml:"fnmatch-directory,omitempty"`
	Regexp           []string `koanf:"regexp" json:"regexp,omitempty" yaml:"regexp,omitempty" toml:"regexp,omitempty"`
	RegexpFile       []string `koanf:"regexp-file" json:"regexp-file,omitempty" yaml:"regexp-file,omitempty" toml:"regexp-file,omitempty"`
	RegexpDirectory  []string `koanf:"regexp-directory" json:"regexp-directory,omitempty" yaml:"regexp-directory,omitempty" toml:"regexp-directory,omitempty"`
}

// Patterns groups the pattern lists by rule key.
func (c Cleanup) Patterns() map[rules.Key][]string {
	lists := [...][]string{
		c.Fnmatch, c.FnmatchFile, c.FnmatchDirectory,
		c.Regexp, c.RegexpFile, c.RegexpDirectory,
	}
	out := make(map[rules.Key][]string, len(lists))
	for i, key := range rules.PriorityOrder {
		if len(lists[i]) > 0 {
			out[key] = lists[i]
		}
	}
	return out
}

// HasPatterns reports whether any pattern rule is configured.
func (c Cleanup) HasPatterns() bool {
	return len(c.Patterns()) > 0
}

// IsEmpty reports whether the config would remove nothing.
func (c Cleanup) IsEmpty() bool {
	return len(c.File) == 0 && len(c.Directory) == 0 && len(c.Path) == 0 && !c.HasPatterns()
}

// Rules compiles the pattern lists.
func (c Cleanup) Rules() (*rules.RuleSet, error) {
	return rules.Compile(c.Patterns())
}

// Validate checks the explicit entries.
func (c Cleanup) Validate() error {
	for _, list := range []struct {
		key     string
		entries []string
	}{
		{KeyFile, c.File},
		{KeyDirectory, c.Directory},
		{KeyPath, c.Path},
	} {
		key := list.key
		for _, entry := range list.entries {
			if err := paths.ValidatePath(entry); err != nil {
				return errors.Wrapf(err, errors.ErrConfigInvalid, "invalid %s entry %q", key, entry).
					WithDetail("key", key)
			}
		}
	}
	return nil
}

// DecodeCleanup decodes one raw config object. Unknown keys are logged and
// dropped; malformed rule keys and badly typed values are errors.
func DecodeCleanup(raw map[string]any) (Cleanup, error) {
	var c Cleanup
	unused, err := decode(raw, &c)
	if err != nil {
		return Cleanup{}, err
	}
	if err := checkUnused(unused); err != nil {
		return Cleanup{}, err
	}
	if err := c.Validate(); err != nil {
		return Cleanup{}, err
	}
	return c, nil
}

// decode runs a weakly typed mapstructure decode and returns unused keys.
func decode(raw map[string]any, out any) ([]string, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "koanf",
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           out,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create config decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid cleanup configuration")
	}
	sort.Strings(md.Unused)
	return md.Unused, nil
}

func checkUnused(unused []string) error {
	logger := logging.GetLogger("config")
	for _, key := range unused {
		if rules.LooksLikeRuleKey(key) {
			if _, err := rules.ParseKey(key); err != nil {
				return err
			}
			return errors.Newf(errors.ErrRuleKeyInvalid, "unsupported rule key %q", key)
		}
		logger.Debug().Str("key", key).Msg("Ignoring unrecognized configuration key")
	}
	return nil
}
