// Package manifest writes and reads the pipeline's input manifest: a CSV
// with header "file,chrlib,group" and one row per instrument file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/mesh-intelligence/msfixture/internal/tabular"
	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// Table converts m to a tabular.Table with the manifest header.
func Table(m types.Manifest) tabular.Table {
	rows := make([][]string, len(m))
	for i, r := range m {
		rows[i] = r.Record()
	}
	return tabular.Table{Header: slices.Clone(types.ManifestHeader), Rows: rows}
}

// Write writes m to path. An empty manifest produces a header-only file.
func Write(path string, m types.Manifest) error {
	if err := tabular.Write(path, tabular.Comma, Table(m)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Select returns the rows of m at the given zero-based indices, in the
// order given. Indices need not be contiguous.
func Select(m types.Manifest, idx ...int) (types.Manifest, error) {
	out := make(types.Manifest, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(m) {
			return nil, fmt.Errorf("row %d out of range [0,%d)", i, len(m))
		}
		out = append(out, m[i])
	}
	return out, nil
}

// Read parses a manifest file. The header must be exactly
// "file,chrlib,group".
func Read(path string) (types.Manifest, error) {
	tbl, err := tabular.Read(path, tabular.Comma)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(tbl.Header, types.ManifestHeader) {
		return nil, fmt.Errorf("%s: header %v: %w", path, tbl.Header, types.ErrSchemaMismatch)
	}
	m := make(types.Manifest, len(tbl.Rows))
	for i, row := range tbl.Rows {
		m[i] = types.ManifestRow{File: row[0], ChrLib: row[1], Group: row[2]}
	}
	return m, nil
}

// Validate checks that every file the manifest references exists. All
// missing files are reported together.
func Validate(m types.Manifest) error {
	var errs []error
	for _, r := range m {
		if _, err := os.Stat(r.File); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.File, types.ErrMissingInput))
		}
	}
	return errors.Join(errs...)
}
