// Package speclib writes and reads small spectral libraries in the SQLite
// layout used by DLIB/ELIB files: a metadata key/value table, one entries
// row per precursor, and a peptide-to-protein mapping.
//
// Entries carry empty fragment arrays. The files are meant to exercise
// library loading and peptide/protein joins, not searching.
package speclib

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/msfixture/internal/tabular"
)

//go:embed schema.sql
var schemaSQL string

// Metadata keys written to every library.
const (
	MetaVersion = "version"
	MetaSource  = "source"

	Version = "0.1.14"
	Source  = "msfixture"
)

// Synthetic precursor placement for entries built from a peptide table.
const (
	DefaultCharge = 2
	baseMz        = 400.0
	mzStep        = 12.5
	rtStep        = 30.0
)

// Entry is one library precursor and the protein it maps to.
type Entry struct {
	PeptideSeq       string
	ProteinAccession string
	PrecursorCharge  int
	PrecursorMz      float64
	RTInSeconds      float64
	Score            float64
	SourceFile       string
	Decoy            bool
}

// Write creates a fresh library at path holding entries. An existing file
// is replaced.
func Write(ctx context.Context, path string, entries []Entry) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove existing library: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, kv := range [][2]string{{MetaVersion, Version}, {MetaSource, Source}} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (Key, Value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert metadata %s: %w", kv[0], err)
		}
	}

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO entries (
    PrecursorMz, PrecursorCharge, PeptideModSeq, PeptideSeq, Copies, RTInSeconds, Score,
    MassEncodedLength, MassArray, IntensityEncodedLength, IntensityArray, SourceFile
) VALUES (?, ?, ?, ?, 1, ?, ?, 0, x'', 0, x'', ?)`,
			e.PrecursorMz, e.PrecursorCharge, e.PeptideSeq, e.PeptideSeq,
			e.RTInSeconds, e.Score, e.SourceFile,
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.PeptideSeq, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO peptidetoprotein (PeptideSeq, isDecoy, ProteinAccession) VALUES (?, ?, ?)`,
			e.PeptideSeq, e.Decoy, e.ProteinAccession,
		); err != nil {
			return fmt.Errorf("insert mapping %s: %w", e.PeptideSeq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Read returns the entries of the library at path joined with their protein
// mapping, ordered by peptide then protein.
func Read(ctx context.Context, path string) ([]Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT
    e.PeptideSeq, p.ProteinAccession, e.PrecursorCharge, e.PrecursorMz,
    e.RTInSeconds, e.Score, e.SourceFile, COALESCE(p.isDecoy, 0)
FROM entries e
JOIN peptidetoprotein p ON p.PeptideSeq = e.PeptideSeq
ORDER BY e.PeptideSeq, p.ProteinAccession`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.PeptideSeq, &e.ProteinAccession, &e.PrecursorCharge, &e.PrecursorMz,
			&e.RTInSeconds, &e.Score, &e.SourceFile, &e.Decoy,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Metadata returns the library's key/value metadata.
func Metadata(ctx context.Context, path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT Key, Value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// EntriesFromTable builds one entry per row of a peptide table, using its
// Peptide and Protein columns. Precursor m/z and retention time are spaced
// evenly by row so every entry is distinct.
func EntriesFromTable(peptides tabular.Table, sourceFile string) ([]Entry, error) {
	peps, err := peptides.Column("Peptide")
	if err != nil {
		return nil, err
	}
	prots, err := peptides.Column("Protein")
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(peps))
	for i := range peps {
		entries[i] = Entry{
			PeptideSeq:       peps[i],
			ProteinAccession: prots[i],
			PrecursorCharge:  DefaultCharge,
			PrecursorMz:      baseMz + float64(i)*mzStep,
			RTInSeconds:      float64(i+1) * rtStep,
			SourceFile:       sourceFile,
		}
	}
	return entries, nil
}
