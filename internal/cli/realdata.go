package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/msfixture/internal/paths"
	"github.com/mesh-intelligence/msfixture/internal/realdata"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/spf13/cobra"
)

const kindRealData = "realdata"

type realDataFlags struct {
	dataDir       string
	profileConfig string
	cpus          int
	fragArgs      string
	strict        bool
}

func newRealDataCmd(a *app) *cobra.Command {
	var f realDataFlags
	cmd := &cobra.Command{
		Use:   "realdata",
		Short: "Build a harness around small real mzML files",
		Long: "Discover *.mzML.gz files in the data directory, write ms_files.csv for\n" +
			"them, and print an invocation that uses the test profile config.\n" +
			"An empty data directory yields a header-only manifest unless --strict.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := paths.ResolveDataDir(f.dataDir, a.config.DataDir)
			if err != nil {
				return systemError(fmt.Errorf("resolve data dir: %w", err))
			}
			profile := f.profileConfig
			if !cmd.Flags().Changed("profile-config") {
				profile = a.config.ProfileConfig
			}

			parent, err := a.outDir()
			if err != nil {
				return err
			}
			ws, err := workspace.Create(parent, kindRealData)
			if err != nil {
				return systemError(err)
			}

			h, err := realdata.Build(ws, realdata.Options{
				DataDir:           dataDir,
				ProfileConfig:     profile,
				CPUs:              f.cpus,
				FragmentationArgs: f.fragArgs,
				Strict:            f.strict,
				Logger:            a.logger,
			})
			if errors.Is(err, types.ErrNoInstrumentFiles) {
				return err
			}
			if err != nil {
				return systemError(err)
			}
			return a.finish(cmd.OutOrStdout(), ws, kindRealData, report{
				Outputs: map[string]string{
					"manifest": h.Manifest,
					"data_dir": dataDir,
				},
				Config: h.Config,
			})
		},
	}
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "directory holding the FASTA, DLIB, and *.mzML.gz files (default: ./tests/data)")
	cmd.Flags().StringVar(&f.profileConfig, "profile-config", types.DefaultProfileConfig, "pipeline config file passed with -c")
	cmd.Flags().IntVar(&f.cpus, "cpus", 0, "pipeline --max_cpus value (default: host CPU count)")
	cmd.Flags().StringVar(&f.fragArgs, "frag-args", realdata.DefaultFragmentationArgs, "arguments passed to the library search step")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when no instrument files are found")
	return cmd
}
