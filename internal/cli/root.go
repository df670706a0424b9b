// Package cli implements the msfixture command-line interface. Each
// generator command creates a fresh fixture directory, builds into it,
// writes a fixture.yaml descriptor, and prints what it made.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mesh-intelligence/msfixture/internal/paths"
	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	outDir    string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one command tree: parsed global flags, the
// loaded configuration, and the logger built from it.
type app struct {
	flags     rootFlags
	configDir string
	config    types.Config
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "msfixture" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "msfixture",
		Short: "Generate test fixtures for a mass-spectrometry pipeline",
		Long: "msfixture builds disposable inputs for pipeline tests: a stub-run project\n" +
			"scaffold, a harness around small real data files, and a synthetic\n" +
			"quantification bundle for the differential abundance step.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	bindGlobalFlags(root.PersistentFlags(), &a.flags)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newScaffoldCmd(a))
	root.AddCommand(newRealDataCmd(a))
	root.AddCommand(newQuantCmd(a))
	root.AddCommand(newSpeclibCmd(a))

	return root
}

func bindGlobalFlags(fs *pflag.FlagSet, f *rootFlags) {
	fs.StringVar(&f.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	fs.StringVar(&f.outDir, "out", "", "parent directory for new fixtures (default: $TMPDIR/msfixture)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&f.jsonMode, "json", false, "output in JSON format")
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// setup loads configuration and builds the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Skip setup for version command
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	cfg := configFromViper(v)
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", configDir, err)
	}

	a.configDir = configDir
	a.config = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	a.logger.Debug("configuration loaded", "config_dir", configDir)
	return nil
}

// outDir resolves the parent directory for new fixtures.
func (a *app) outDir() (string, error) {
	dir, err := paths.ResolveOutDir(a.flags.outDir, a.config.OutDir)
	if err != nil {
		return "", systemError(fmt.Errorf("resolve output dir: %w", err))
	}
	return dir, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// sysError marks failures of the environment (filesystem, database) as
// opposed to bad input.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
