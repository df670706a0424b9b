// Package tabular reads and writes small delimited text tables (CSV and TSV)
// with atomic persistence. Every fixture table in msfixture goes through
// here so that quoting and line endings are identical across builders.
package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Field delimiters.
const (
	Comma = ','
	Tab   = '\t'
)

// FileMode is the permission of every written table.
const FileMode os.FileMode = 0o644

// Table is a header plus rows of string fields. Rows are expected to have
// the same width as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of column name in the header, or -1.
func (t Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column in row order.
func (t Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not in header %v", name, t.Header)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx >= len(row) {
			return nil, fmt.Errorf("row %d has %d fields, want > %d", i, len(row), idx)
		}
		out[i] = row[idx]
	}
	return out, nil
}

// Distinct returns the distinct values of the named column in order of
// first appearance.
func (t Table) Distinct(name string) ([]string, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(col))
	var out []string
	for _, v := range col {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// Validate checks that every row matches the header width.
func (t Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(t.Header))
		}
	}
	return nil
}

// Write atomically writes t to path using the given delimiter. The file is
// written to a temp file in the same directory, synced, and renamed into
// place with mode FileMode. Lines end in a single '\n'.
func Write(path string, delim rune, t Table) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".table-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	w := csv.NewWriter(bw)
	w.Comma = delim
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing rows: %w", err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Chmod(FileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Read parses a delimited file. The first record is the header. A file
// holding only a header yields a Table with no rows.
func Read(path string, delim rune) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delim
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("parsing %s: missing header", path)
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}
