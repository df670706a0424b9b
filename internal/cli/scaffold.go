package cli

import (
	"fmt"

	"github.com/mesh-intelligence/msfixture/internal/scaffold"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/spf13/cobra"
)

const kindScaffold = "scaffold"

func newScaffoldCmd(a *app) *cobra.Command {
	var maxMemory string
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Build a stub-run project with placeholder inputs",
		Long: "Create placeholder raw files, ms_files.csv and ms_files_short.csv,\n" +
			"empty FASTA and DLIB files, and print the stub-run invocation.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-memory") {
				maxMemory = a.config.MaxMemory
			}
			if err := (types.Config{MaxMemory: maxMemory}).Validate(); err != nil {
				return fmt.Errorf("--max-memory %q: %w", maxMemory, err)
			}

			parent, err := a.outDir()
			if err != nil {
				return err
			}
			ws, err := workspace.Create(parent, kindScaffold)
			if err != nil {
				return systemError(err)
			}

			s, err := scaffold.Build(ws, scaffold.Options{MaxMemory: maxMemory, Logger: a.logger})
			if err != nil {
				return systemError(err)
			}
			return a.finish(cmd.OutOrStdout(), ws, kindScaffold, report{
				Outputs: map[string]string{
					"manifest":       s.Manifest,
					"short_manifest": s.ShortManifest,
					"raw_dir":        ws.Path(scaffold.RawDir),
				},
				Config: s.Config,
			})
		},
	}
	cmd.Flags().StringVar(&maxMemory, "max-memory", scaffold.DefaultMaxMemory, "pipeline --max_memory value")
	return cmd
}
