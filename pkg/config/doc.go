// Package config handles cleanup configuration for pkgprune.
//
// A project configuration is a JSON, YAML or TOML object whose "packages"
// entry holds the default cleanup rules plus two package-level controls:
//
//	{
//	  "packages": {
//	    "exclude":  ["acme/keep-everything"],
//	    "override": {"acme/widgets": {"directory": ["examples"]}},
//	    "file":      ["README.dist"],
//	    "directory": ["docs"],
//	    "path":      ["CHANGELOG.md"],
//	    "fnmatch-directory": ["test*"],
//	    "regexp-file": ["/\\.dist$/"]
//	  }
//	}
//
// Every list key also accepts a single string. Unknown keys are ignored
// and logged, except keys that start with "fnmatch" or "regexp": those
// must be one of the six rule keys or the configuration is rejected.
//
// The configuration is read from a dedicated file in the project root
// (.project-cleanup.json, .yaml, .yml or .toml) or, failing that, from the
// "project-cleanup" entry of the manifest's "extra" block.
package config
