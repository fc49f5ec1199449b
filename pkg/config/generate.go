package config

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/pkgprune/pkg/errors"
)

// Formats lists the formats Generate can produce.
var Formats = []string{"json", "yaml", "toml"}

type samplePackages struct {
	Cleanup  `yaml:",inline"`
	Exclude  []string           `json:"exclude" yaml:"exclude" toml:"exclude"`
	Override map[string]Cleanup `json:"override" yaml:"override" toml:"override"`
}

type sampleProject struct {
	Packages samplePackages `json:"packages" yaml:"packages" toml:"packages"`
}

const sampleHeader = `pkgprune configuration.
Rules under "packages" apply to every installed package.
"exclude" lists packages to leave alone, "override" replaces the rules
for a single package. Explicit entries (file, directory, path) are
relative to the package install path.`

// sample returns the sample project configuration.
func sample() sampleProject {
	return sampleProject{Packages: samplePackages{
		Cleanup: Cleanup{
			File:             []string{"README.md", "CHANGELOG.md"},
			Directory:        []string{"tests", "docs"},
			FnmatchFile:      []string{"*.dist", ".git*"},
			FnmatchDirectory: []string{".github"},
			RegexpFile:       []string{`/\.(yml|yaml)$/i`},
		},
		Exclude: []string{"vendor/keep-me"},
		Override: map[string]Cleanup{
			"vendor/only-docs": {Directory: []string{"docs"}},
		},
	}}
}

// Generate renders the sample configuration in the given format.
func Generate(format string) (string, error) {
	s := sample()
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(s, "", "    ")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to encode sample config")
		}
		return string(data) + "\n", nil
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to encode sample config")
		}
		return commentHeader() + buf.String(), nil
	case "toml":
		data, err := toml.Marshal(s)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to encode sample config")
		}
		return commentHeader() + string(data), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported format %q", format).
			WithDetail("formats", Formats)
	}
}

// FileName returns the dedicated config file name for a format.
func FileName(format string) string {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return ".project-cleanup.yaml"
	case "toml":
		return ".project-cleanup.toml"
	default:
		return ".project-cleanup.json"
	}
}

func commentHeader() string {
	lines := strings.Split(sampleHeader, "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n") + "\n\n"
}
