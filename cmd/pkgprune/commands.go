package pkgprune

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/pkgprune/internal/version"
	"github.com/arthur-debert/pkgprune/pkg/cleanup"
	"github.com/arthur-debert/pkgprune/pkg/composer"
	"github.com/arthur-debert/pkgprune/pkg/config"
	"github.com/arthur-debert/pkgprune/pkg/filesystem"
	"github.com/arthur-debert/pkgprune/pkg/logging"
	"github.com/arthur-debert/pkgprune/pkg/ui"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbosity int
	format    string
	noColor   bool

	// resolved is the output format picked by renderer.
	resolved ui.Format
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "pkgprune",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			if opts.noColor {
				ui.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(ui.FormatNames, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newDirCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// renderer builds the output renderer for cmd from the global flags.
func (o *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	if o.noColor && format == ui.FormatAuto {
		format = ui.FormatText
	}
	o.resolved = format
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// renderFailure also writes err to stdout when the output is JSON, so
// callers parsing it see failures too. main prints err to stderr.
func (o *globalOptions) renderFailure(renderer ui.Renderer, err error) error {
	if err == nil || o.resolved != ui.FormatJSON {
		return err
	}
	if rerr := renderer.RenderError(err); rerr != nil {
		log.Debug().Err(rerr).Msg("Failed to render error")
	}
	return err
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	var (
		workingDir string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return opts.renderFailure(renderer, runProject(renderer, workingDir, strict))
		},
	}

	cmd.Flags().StringVarP(&workingDir, "working-dir", "d", "", MsgFlagWorkingDir)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)

	return cmd
}

// runProject cleans every installed package of the project found from
// workingDir.
func runProject(renderer ui.Renderer, workingDir string, strict bool) error {
	logger := logging.GetLogger("cmd.run")

	dir, err := resolveWorkingDir(workingDir)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOS()
	locator := composer.New(composer.Options{FS: fsys})
	project, err := locator.Locate(dir)
	if err != nil {
		return fmt.Errorf(MsgErrLocate, err)
	}

	cfg, err := config.NewLoader(fsys).LoadProject(project.Dir, project.ManifestPath)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	if cfg == nil {
		return renderer.RenderMessage(MsgNothingConfigured)
	}
	if cfg.Packages == nil {
		return renderer.RenderMessage(MsgNoPackagesSection)
	}

	packages, err := locator.InstalledPackages(project)
	if err != nil {
		return fmt.Errorf(MsgErrListPackages, err)
	}

	logger.Info().
		Str("project", project.Dir).
		Str("config", cfg.Source).
		Int("packages", len(packages)).
		Msg("Starting cleanup")

	summary := cleanup.New(cleanup.Options{FS: fsys}).CleanPackages(cfg.Packages, packages)
	summary.Source = cfg.Source

	if err := renderer.RenderResult(summary); err != nil {
		return fmt.Errorf(MsgErrRender, err)
	}
	if strict && summary.HasProblems() {
		return fmt.Errorf(MsgErrStrict, len(summary.Failures()), len(summary.ConfigErrors()))
	}
	return nil
}

func newDirCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:     "dir <base-path>",
		Short:   MsgDirShort,
		Long:    MsgDirLong,
		Example: MsgDirExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return opts.renderFailure(renderer, cleanDir(renderer, args[0], configPath, strict))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// cleanDir cleans base with the rules read from configPath.
func cleanDir(renderer ui.Renderer, base, configPath string, strict bool) error {
	fsys := filesystem.NewOS()
	rules, err := config.NewLoader(fsys).LoadCleanupFile(configPath)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	report, err := cleanup.New(cleanup.Options{FS: fsys}).CleanDir(base, rules)
	if err != nil {
		return fmt.Errorf(MsgErrCleanDir, base, err)
	}

	if err := renderer.RenderResult(report); err != nil {
		return fmt.Errorf(MsgErrRender, err)
	}
	if strict && report.HasFailures() {
		return fmt.Errorf(MsgErrStrict, len(report.Failures()), 0)
	}
	return nil
}

func newGenConfigCmd() *cobra.Command {
	var (
		format     string
		write      bool
		workingDir string
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.Generate(format)
			if err != nil {
				return err
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			dir, err := resolveWorkingDir(workingDir)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, config.FileName(format))
			if _, err := os.Lstat(path); err == nil {
				return fmt.Errorf(MsgErrConfigExists, path)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, path, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "type", "t", "json", MsgFlagType)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().StringVarP(&workingDir, "working-dir", "d", "", MsgFlagWorkingDir)
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(config.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func resolveWorkingDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf(MsgErrWorkingDir, err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf(MsgErrWorkingDir, err)
	}
	return abs, nil
}

