package quant

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/mesh-intelligence/msfixture/internal/tabular"
	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// Validate re-reads a bundle from disk and checks the joins between its
// tables:
//
//   - the protein table is exactly the distinct Protein values of the
//     peptide table;
//   - annotation rows map 1:1 onto peptide sample columns through Sample;
//   - contrast columns are exactly the distinct annotation conditions;
//   - every contrast row sums to zero.
func Validate(b types.QuantBundle) error {
	peptides, err := tabular.Read(b.Peptides, tabular.Tab)
	if err != nil {
		return err
	}
	proteins, err := tabular.Read(b.Proteins, tabular.Tab)
	if err != nil {
		return err
	}
	annotation, err := tabular.Read(b.Annotation, tabular.Comma)
	if err != nil {
		return err
	}
	contrasts, err := tabular.Read(b.Contrasts, tabular.Comma)
	if err != nil {
		return err
	}

	samples, err := checkPeptides(peptides)
	if err != nil {
		return err
	}
	if err := checkProteins(peptides, proteins); err != nil {
		return err
	}
	conditions, err := checkAnnotation(annotation, samples)
	if err != nil {
		return err
	}
	return checkContrasts(contrasts, conditions)
}

// checkPeptides returns the sample stems named by the intensity columns.
func checkPeptides(t tabular.Table) ([]Sample, error) {
	n := len(t.Header)
	if n < 4 || !slices.Equal(t.Header[n-3:], []string{ColPeptide, ColProtein, ColNumFragments}) {
		return nil, fmt.Errorf("peptide header %v: %w", t.Header, types.ErrSchemaMismatch)
	}
	samples := make([]Sample, 0, n-3)
	for _, col := range t.Header[:n-3] {
		s, ok := SampleFromColumn(col)
		if !ok {
			return nil, fmt.Errorf("peptide column %q is not a sample: %w", col, types.ErrSchemaMismatch)
		}
		samples = append(samples, s)
	}

	seen := make(map[string]bool, len(t.Rows))
	for i, row := range t.Rows {
		pep := row[n-3]
		if seen[pep] {
			return nil, fmt.Errorf("duplicate peptide %q: %w", pep, types.ErrSchemaMismatch)
		}
		seen[pep] = true
		for j, field := range row[:n-3] {
			v, err := parseFinite(field)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("row %d column %q: bad intensity %q: %w", i, t.Header[j], field, types.ErrSchemaMismatch)
			}
		}
	}
	return samples, nil
}

func checkProteins(peptides, proteins tabular.Table) error {
	if !slices.Equal(proteins.Header, []string{ColProtein}) {
		return fmt.Errorf("protein header %v: %w", proteins.Header, types.ErrSchemaMismatch)
	}
	want, err := peptides.Distinct(ColProtein)
	if err != nil {
		return err
	}
	got, err := proteins.Column(ColProtein)
	if err != nil {
		return err
	}
	if !sameSet(want, got) || len(got) != len(want) {
		return fmt.Errorf("protein table %v, peptide proteins %v: %w", got, want, types.ErrSchemaMismatch)
	}
	return nil
}

// checkAnnotation returns the distinct conditions in first-appearance order.
func checkAnnotation(t tabular.Table, samples []Sample) ([]string, error) {
	if !slices.Equal(t.Header, AnnotationHeader) {
		return nil, fmt.Errorf("annotation header %v: %w", t.Header, types.ErrSchemaMismatch)
	}
	if len(t.Rows) != len(samples) {
		return nil, fmt.Errorf("%d annotation rows for %d samples: %w", len(t.Rows), len(samples), types.ErrSchemaMismatch)
	}

	files, err := t.Column(types.ColumnFile)
	if err != nil {
		return nil, err
	}
	annotated := make([]string, len(files))
	for i, f := range files {
		s, ok := SampleFromRemote(f)
		if !ok {
			return nil, fmt.Errorf("annotation file %q: %w", f, types.ErrSchemaMismatch)
		}
		annotated[i] = string(s)
	}
	columns := make([]string, len(samples))
	for i, s := range samples {
		columns[i] = string(s)
	}
	if !sameSet(annotated, columns) {
		return nil, fmt.Errorf("annotated samples %v, peptide samples %v: %w", annotated, columns, types.ErrSchemaMismatch)
	}

	return t.Distinct(ColCondition)
}

func checkContrasts(t tabular.Table, conditions []string) error {
	if len(t.Header) < 2 || t.Header[0] != "" {
		return fmt.Errorf("contrast header %v: %w", t.Header, types.ErrInvalidContrast)
	}
	if !sameSet(t.Header[1:], conditions) || len(t.Header)-1 != len(conditions) {
		return fmt.Errorf("contrast columns %v, conditions %v: %w", t.Header[1:], conditions, types.ErrInvalidContrast)
	}
	if len(t.Rows) == 0 {
		return fmt.Errorf("no contrasts: %w", types.ErrInvalidContrast)
	}
	for _, row := range t.Rows {
		sum := 0.0
		for _, field := range row[1:] {
			v, err := parseFinite(field)
			if err != nil {
				return fmt.Errorf("contrast %q: coefficient %q: %w", row[0], field, types.ErrInvalidContrast)
			}
			sum += v
		}
		if math.Abs(sum) > 1e-9 {
			return fmt.Errorf("contrast %q sums to %g: %w", row[0], sum, types.ErrInvalidContrast)
		}
	}
	return nil
}

// parseFinite parses field as a float and rejects NaN and infinities.
func parseFinite(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", field)
	}
	return v, nil
}

func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, v := range a {
		as[v] = true
	}
	bs := make(map[string]bool, len(b))
	for _, v := range b {
		if !as[v] {
			return false
		}
		bs[v] = true
	}
	return len(as) == len(bs)
}
