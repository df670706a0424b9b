package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newSpeclibCmd(a *app) *cobra.Command {
	var peptides, output string
	cmd := &cobra.Command{
		Use:   "speclib",
		Short: "Write a SQLite spectral library from a peptide table",
		Long: "Read a tab-separated peptide table with Peptide and Protein columns and\n" +
			"write a DLIB-layout SQLite library with one entry per peptide.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = filepath.Join(filepath.Dir(peptides), libraryName)
			}
			lib, err := writeLibrary(cmd, peptides, output)
			if err != nil {
				return err
			}
			a.logger.Info("library written", "path", lib)
			fmt.Fprintln(cmd.OutOrStdout(), lib)
			return nil
		},
	}
	cmd.Flags().StringVar(&peptides, "peptides", "", "peptide table (tab-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "library path (default: encyclopedia.dlib next to the peptide table)")
	_ = cmd.MarkFlagRequired("peptides")
	return cmd
}
