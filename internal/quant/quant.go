// Package quant synthesizes the four-table input of a differential
// abundance step: a peptide intensity matrix, the protein list it
// references, a sample annotation table with a two-level condition, and a
// contrast matrix over those conditions.
//
// All randomness comes from a caller-supplied Source, so a fixed seed
// yields byte-identical files.
package quant

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/msfixture/internal/tabular"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// Output file names.
const (
	PeptidesName   = "encyclopedia.peptides.txt"
	ProteinsName   = "encyclopedia.proteins.txt"
	AnnotationName = "input.csv"
	ContrastsName  = "contrasts.csv"
)

// Column names.
const (
	ColPeptide      = "Peptide"
	ColProtein      = "Protein"
	ColNumFragments = "numFragments"
	ColCondition    = "condition"
)

// AnnotationHeader is the column order of the annotation table.
var AnnotationHeader = []string{types.ColumnFile, types.ColumnChrLib, types.ColumnGroup, ColCondition}

// Annotation constants shared by every sample row.
const (
	AnnotationChrLib = "False"
	AnnotationGroup  = "default"
	ContrastName     = "test"
	NumFragments     = "1"
)

// Scale multiplies the squared normal deviates.
const Scale = 1e5

// DefaultSeed is the seed used when callers have no preference.
const DefaultSeed = types.DefaultSeed

// Source is the random source the synthesizer draws from.
type Source interface {
	NormFloat64() float64
}

// NewSource returns a PCG-backed source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Design fixes the shape of the bundle.
type Design struct {
	Samples  []Sample
	Peptides []string
	// Proteins are assigned to peptides in equal contiguous blocks.
	Proteins []string
	// Conditions has exactly two labels; the first half of Samples gets
	// the first label.
	Conditions [2]string
}

// DefaultDesign is 16 peptides over 2 proteins measured in 4 samples.
func DefaultDesign() Design {
	return Design{
		Samples:    []Sample{"W", "X", "Y", "Z"},
		Peptides:   strings.Split("ABCDEFGHIJKLMNOP", ""),
		Proteins:   []string{"A", "B"},
		Conditions: [2]string{"C", "D"},
	}
}

// Validate checks the design can produce a balanced bundle.
func (d Design) Validate() error {
	if len(d.Samples) == 0 || len(d.Samples)%2 != 0 {
		return fmt.Errorf("%d samples: %w", len(d.Samples), types.ErrOddSampleCount)
	}
	if len(d.Proteins) == 0 || len(d.Peptides)%len(d.Proteins) != 0 {
		return fmt.Errorf("%d peptides cannot be split evenly over %d proteins: %w",
			len(d.Peptides), len(d.Proteins), types.ErrSchemaMismatch)
	}
	if d.Conditions[0] == "" || d.Conditions[1] == "" || d.Conditions[0] == d.Conditions[1] {
		return fmt.Errorf("conditions %v: %w", d.Conditions, types.ErrInvalidContrast)
	}
	seen := make(map[string]bool, len(d.Peptides))
	for _, p := range d.Peptides {
		if seen[p] {
			return fmt.Errorf("duplicate peptide %q: %w", p, types.ErrSchemaMismatch)
		}
		seen[p] = true
	}
	return nil
}

// ProteinOf returns the protein assigned to the i-th peptide.
func (d Design) ProteinOf(i int) string {
	return d.Proteins[i*len(d.Proteins)/len(d.Peptides)]
}

// ConditionOf returns the condition of the i-th sample.
func (d Design) ConditionOf(i int) string {
	if i < len(d.Samples)/2 {
		return d.Conditions[0]
	}
	return d.Conditions[1]
}

// Options tune a synthesis run.
type Options struct {
	// Design defaults to DefaultDesign.
	Design *Design
	Logger *slog.Logger
}

// Synthesize writes the four tables into ws and returns their paths.
func Synthesize(ws *workspace.Workspace, src Source, opts Options) (types.QuantBundle, error) {
	design := DefaultDesign()
	if opts.Design != nil {
		design = *opts.Design
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := design.Validate(); err != nil {
		return types.QuantBundle{}, err
	}

	peptides := PeptideTable(design, Intensities(src, len(design.Peptides), len(design.Samples)))
	proteins, err := ProteinTable(peptides)
	if err != nil {
		return types.QuantBundle{}, err
	}

	bundle := types.QuantBundle{
		Peptides:   ws.Path(PeptidesName),
		Proteins:   ws.Path(ProteinsName),
		Annotation: ws.Path(AnnotationName),
		Contrasts:  ws.Path(ContrastsName),
	}

	writes := []struct {
		path  string
		delim rune
		table tabular.Table
	}{
		{bundle.Peptides, tabular.Tab, peptides},
		{bundle.Proteins, tabular.Tab, proteins},
		{bundle.Annotation, tabular.Comma, AnnotationTable(design)},
		{bundle.Contrasts, tabular.Comma, ContrastTable(design)},
	}
	for _, w := range writes {
		if err := tabular.Write(w.path, w.delim, w.table); err != nil {
			return types.QuantBundle{}, err
		}
	}

	logger.Debug("quant bundle synthesized",
		"root", ws.Root(),
		"peptides", len(design.Peptides),
		"samples", len(design.Samples),
	)
	return bundle, nil
}

// Intensities draws a rows x cols matrix of squared standard-normal
// deviates scaled by Scale, filled row by row.
func Intensities(src Source, rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			z := src.NormFloat64()
			m[i][j] = z * z * Scale
		}
	}
	return m
}

// PeptideTable lays out one intensity column per sample followed by the
// Peptide, Protein, and numFragments columns.
func PeptideTable(d Design, intensities [][]float64) tabular.Table {
	header := make([]string, 0, len(d.Samples)+3)
	for _, s := range d.Samples {
		header = append(header, s.QuantColumn())
	}
	header = append(header, ColPeptide, ColProtein, ColNumFragments)

	rows := make([][]string, len(d.Peptides))
	for i, pep := range d.Peptides {
		row := make([]string, 0, len(header))
		for _, v := range intensities[i] {
			row = append(row, FormatIntensity(v))
		}
		rows[i] = append(row, pep, d.ProteinOf(i), NumFragments)
	}
	return tabular.Table{Header: header, Rows: rows}
}

// ProteinTable lists the distinct Protein values of a peptide table.
func ProteinTable(peptides tabular.Table) (tabular.Table, error) {
	prots, err := peptides.Distinct(ColProtein)
	if err != nil {
		return tabular.Table{}, err
	}
	rows := make([][]string, len(prots))
	for i, p := range prots {
		rows[i] = []string{p}
	}
	return tabular.Table{Header: []string{ColProtein}, Rows: rows}, nil
}

// AnnotationTable has one row per sample, naming it by its remote raw file.
func AnnotationTable(d Design) tabular.Table {
	rows := make([][]string, len(d.Samples))
	for i, s := range d.Samples {
		rows[i] = []string{s.RemoteFile(), AnnotationChrLib, AnnotationGroup, d.ConditionOf(i)}
	}
	return tabular.Table{Header: append([]string(nil), AnnotationHeader...), Rows: rows}
}

// ContrastTable is a single contrast testing the second condition against
// the first. The index column has an empty header.
func ContrastTable(d Design) tabular.Table {
	return tabular.Table{
		Header: []string{"", d.Conditions[0], d.Conditions[1]},
		Rows:   [][]string{{ContrastName, "-1", "1"}},
	}
}

// FormatIntensity renders v as the shortest decimal that round-trips.
func FormatIntensity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
