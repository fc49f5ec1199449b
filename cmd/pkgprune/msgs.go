package pkgprune

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Prune unneeded files from installed packages"
	MsgRunShort        = "Clean all installed packages of a project"
	MsgDirShort        = "Clean one directory with a rule file"
	MsgGenConfigShort  = "Print a sample configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNothingConfigured = "No cleanup configuration found, nothing to do."
	MsgNoPackagesSection = "Configuration has no \"packages\" section, nothing to do."
	MsgConfigWritten     = "Wrote %s\n"
	MsgVersionFormat     = "pkgprune version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrWorkingDir   = "failed to determine working directory: %w"
	MsgErrLocate       = "failed to locate project: %w"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrListPackages = "failed to list installed packages: %w"
	MsgErrCleanDir     = "failed to clean %s: %w"
	MsgErrRender       = "failed to render output: %w"
	MsgErrStrict       = "cleanup finished with %d failed removals and %d configuration errors"
	MsgErrConfigExists = "%s already exists"
	MsgErrWriteConfig  = "failed to write %s: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat     = "Output format (auto, term, text, json)"
	MsgFlagNoColor    = "Disable colored output"
	MsgFlagWorkingDir = "Project directory (default is the current directory)"
	MsgFlagStrict     = "Exit non-zero when a removal fails or a package has a configuration error"
	MsgFlagConfig     = "Rule file (json, yaml or toml)"
	MsgFlagType       = "Sample format (json, yaml, toml)"
	MsgFlagWrite      = "Write the sample to the working directory instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/dir-long.txt
	msgDirLongRaw string
	MsgDirLong = strings.TrimSpace(msgDirLongRaw)

	//go:embed msgs/dir-example.txt
	msgDirExampleRaw string
	MsgDirExample = strings.TrimRight(msgDirExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong = strings.TrimSpace(msgGenConfigLongRaw)
)
