package cli

import (
	"fmt"

	"github.com/mesh-intelligence/msfixture/internal/quant"
	"github.com/mesh-intelligence/msfixture/internal/speclib"
	"github.com/mesh-intelligence/msfixture/internal/tabular"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/spf13/cobra"
)

const (
	kindQuant   = "quant"
	libraryName = "encyclopedia.dlib"
)

type quantFlags struct {
	seed    uint64
	check   bool
	library bool
}

func newQuantCmd(a *app) *cobra.Command {
	var f quantFlags
	cmd := &cobra.Command{
		Use:   "quant",
		Short: "Synthesize a peptide quantification bundle",
		Long: "Write encyclopedia.peptides.txt, encyclopedia.proteins.txt, input.csv,\n" +
			"and contrasts.csv from a seeded random source.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := f.seed
			if !cmd.Flags().Changed("seed") {
				seed = a.config.Seed
			}

			parent, err := a.outDir()
			if err != nil {
				return err
			}
			ws, err := workspace.Create(parent, kindQuant)
			if err != nil {
				return systemError(err)
			}

			b, err := quant.Synthesize(ws, quant.NewSource(seed), quant.Options{Logger: a.logger})
			if err != nil {
				return systemError(err)
			}
			if f.check {
				if err := quant.Validate(b); err != nil {
					return fmt.Errorf("bundle failed validation: %w", err)
				}
			}
			digest, err := quant.Digest(b)
			if err != nil {
				return systemError(err)
			}

			outputs := map[string]string{
				"peptides":   b.Peptides,
				"proteins":   b.Proteins,
				"annotation": b.Annotation,
				"contrasts":  b.Contrasts,
			}
			if f.library {
				lib, err := writeLibrary(cmd, b.Peptides, ws.Path(libraryName))
				if err != nil {
					return err
				}
				outputs["library"] = lib
			}

			a.logger.Debug("quant bundle digest", "seed", seed, "digest", digest)
			return a.finish(cmd.OutOrStdout(), ws, kindQuant, report{Outputs: outputs, Digest: digest})
		},
	}
	cmd.Flags().Uint64Var(&f.seed, "seed", quant.DefaultSeed, "random seed")
	cmd.Flags().BoolVar(&f.check, "check", true, "validate table joins after writing")
	cmd.Flags().BoolVar(&f.library, "library", false, "also write a spectral library for the synthesized peptides")
	return cmd
}

// writeLibrary builds a spectral library from a peptide table file.
func writeLibrary(cmd *cobra.Command, peptidesPath, out string) (string, error) {
	tbl, err := tabular.Read(peptidesPath, tabular.Tab)
	if err != nil {
		return "", err
	}
	entries, err := speclib.EntriesFromTable(tbl, peptidesPath)
	if err != nil {
		return "", err
	}
	if err := speclib.Write(cmd.Context(), out, entries); err != nil {
		return "", systemError(err)
	}
	return out, nil
}
