package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contrasts.csv")
	tbl := Table{
		Header: []string{"", "C", "D"},
		Rows:   [][]string{{"test", "-1", "1"}},
	}

	require.NoError(t, Write(path, Comma, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ",C,D\ntest,-1,1\n", string(data))
}

func TestWriteTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proteins.txt")
	tbl := Table{Header: []string{"Protein"}, Rows: [][]string{{"A"}, {"B"}}}

	require.NoError(t, Write(path, Tab, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Protein\nA\nB\n", string(data))
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, Write(path, Comma, Table{Header: []string{"a"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "t.csv", entries[0].Name())
}

func TestWriteFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ms_files.csv")
	require.NoError(t, Write(path, Comma, Table{Header: []string{"file"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileMode, info.Mode().Perm())
}

func TestWriteRejectsRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	err := Write(path, Comma, Table{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1"}},
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peptides.txt")
	want := Table{
		Header: []string{"W.mzML", "Peptide", "Protein"},
		Rows: [][]string{
			{"12.5", "A", "A"},
			{"0.25", "B", "A"},
			{"3", "C", "B"},
		},
	}
	require.NoError(t, Write(path, Tab, want))

	got, err := Read(path, Tab)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	prots, err := got.Distinct("Protein")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, prots)

	_, err = got.Column("numFragments")
	assert.Error(t, err)
}

func TestReadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ms_files.csv")
	require.NoError(t, os.WriteFile(path, []byte("file,chrlib,group\n"), 0o644))

	got, err := Read(path, Comma)
	require.NoError(t, err)
	assert.Equal(t, []string{"file", "chrlib", "group"}, got.Header)
	assert.Empty(t, got.Rows)
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Read(path, Comma)
	assert.Error(t, err)
}
