package config

import (
	"errors"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	perrors "github.com/arthur-debert/pkgprune/pkg/errors"
)

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// parserFor picks a koanf parser from a file extension. Unknown extensions
// are read as JSON, the native format of the host manifest.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return kjson.Parser()
	}
}

// ParseBytes parses a configuration document into a raw object.
// Blank input yields a nil map and no error.
func ParseBytes(data []byte, path string) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(path)); err != nil {
		return nil, perrors.Wrapf(err, perrors.ErrConfigInvalid, "failed to parse %s", path).
			WithDetail("path", path)
	}
	// Raw keeps nested keys intact, so package names containing the
	// delimiter are safe.
	return k.Raw(), nil
}
