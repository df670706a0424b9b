package mzml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.mzML.gz")
	require.NoError(t, WritePlaceholder(path, "n"))

	compressed, err := IsCompressed(path)
	require.NoError(t, err)
	assert.True(t, compressed)

	id, err := RunID(path)
	require.NoError(t, err)
	assert.Equal(t, "n", id)
}

func TestWritePlaceholderEscapesRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.mzML.gz")
	require.NoError(t, WritePlaceholder(path, `a<b&"c"`))

	id, err := RunID(path)
	require.NoError(t, err)
	assert.Equal(t, `a<b&"c"`, id)
}

func TestIsCompressed(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "a.raw")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err := IsCompressed(empty)
	require.NoError(t, err)
	assert.False(t, got, "empty placeholder is not compressed")

	plain := filepath.Join(dir, "b.mzML")
	require.NoError(t, os.WriteFile(plain, []byte("<mzML/>"), 0o644))
	got, err = IsCompressed(plain)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = IsCompressed(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.raw", "a"},
		{"n.mzML.gz", "n"},
		{"W.mzML", "W"},
		{"notes.txt", "notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.name))
		})
	}
}
