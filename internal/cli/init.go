package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type initFlags struct {
	dataDir string
	outDir  string
	force   bool
}

func newInitCmd(a *app) *cobra.Command {
	var f initFlags
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and write config.yaml with default values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a, f)
		},
	}
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "real-data directory to record in config.yaml")
	cmd.Flags().StringVar(&f.outDir, "fixtures-dir", "", "fixture parent directory to record in config.yaml")
	cmd.Flags().BoolVar(&f.force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, a *app, f initFlags) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return systemError(fmt.Errorf("create config directory: %w", err))
	}

	path := filepath.Join(a.configDir, configFileExt)
	if _, err := os.Stat(path); err == nil && !f.force {
		fmt.Fprintf(cmd.OutOrStdout(), "config already exists: %s\n", path)
		return nil
	}

	cfg := types.Config{
		DataDir:       f.dataDir,
		ProfileConfig: types.DefaultProfileConfig,
		OutDir:        f.outDir,
		MaxMemory:     types.DefaultMaxMemory,
		LogLevel:      types.DefaultLogLevel,
		Seed:          types.DefaultSeed,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return systemError(fmt.Errorf("write config: %w", err))
	}

	a.logger.Info("config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
