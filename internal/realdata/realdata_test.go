package realdata

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/mesh-intelligence/msfixture/internal/invocation"
	"github.com/mesh-intelligence/msfixture/internal/manifest"
	"github.com/mesh-intelligence/msfixture/internal/mzml"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDataDir creates a data directory with the FASTA, DLIB, and one
// compressed mzML file per stem.
func seedDataDir(t *testing.T, stems ...string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FastaName), []byte(">sp|P1|TEST\nPEPTIDEK\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DlibName), nil, 0o644))
	for _, stem := range stems {
		require.NoError(t, mzml.WritePlaceholder(filepath.Join(dir, stem+mzml.CompressedExt), stem))
	}
	return dir
}

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	return ws
}

func TestBuildDiscoversCompressedFiles(t *testing.T) {
	dataDir := seedDataDir(t, "run2", "run1")
	// Files that do not match the pattern are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "run3.mzML"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "run4.raw"), nil, 0o644))

	ws := newWorkspace(t)
	h, err := Build(ws, Options{DataDir: dataDir})
	require.NoError(t, err)

	want := []string{
		filepath.Join(dataDir, "run1.mzML.gz"),
		filepath.Join(dataDir, "run2.mzML.gz"),
	}
	assert.Equal(t, want, h.Files)

	rows, err := manifest.Read(h.Manifest)
	require.NoError(t, err)
	assert.Equal(t, types.Manifest{
		{File: want[0], ChrLib: "false", Group: "test"},
		{File: want[1], ChrLib: "false", Group: "test"},
	}, rows)
	assert.NoError(t, manifest.Validate(rows))
}

func TestBuildConfig(t *testing.T) {
	dataDir := seedDataDir(t, "run1")
	ws := newWorkspace(t)

	h, err := Build(ws, Options{DataDir: dataDir, CPUs: 3})
	require.NoError(t, err)

	want := types.Invocation{
		"-w", ws.Path("work"),
		"-c", "conf/test.config",
		"--result_dir", ws.Path("results"),
		"--mzml_dir", ws.Path("mzml"),
		"--report_dir", ws.Path("reports"),
		"--fasta", filepath.Join(dataDir, "small-yeast.fasta"),
		"--dlib", filepath.Join(dataDir, "small-yeast.dlib"),
		"--input", ws.Path("ms_files.csv"),
		"--max_cpus", "3",
		"--encyclopedia.local.args", "-frag HCD",
	}
	assert.Equal(t, want, h.Config)

	assert.False(t, h.Config.Has(invocation.FlagStubRun))
	assert.False(t, h.Config.Has(invocation.FlagWithoutDocker))
	assert.False(t, h.Config.Has(invocation.FlagProfile))
}

func TestBuildDefaultsToHostCPUs(t *testing.T) {
	ws := newWorkspace(t)
	h, err := Build(ws, Options{DataDir: seedDataDir(t, "run1")})
	require.NoError(t, err)

	got, err := h.Config.Lookup(invocation.FlagMaxCPUs)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(runtime.NumCPU()), got)
}

func TestBuildOverrides(t *testing.T) {
	ws := newWorkspace(t)
	h, err := Build(ws, Options{
		DataDir:           seedDataDir(t, "run1"),
		ProfileConfig:     "conf/other.config",
		FragmentationArgs: "-frag CID",
	})
	require.NoError(t, err)

	assert.True(t, h.Config.Contains(invocation.FlagConfig, "conf/other.config"))
	assert.True(t, h.Config.Contains(invocation.FlagEncyclopediaLocalArgs, "-frag CID"))
}

func TestBuildEmptyDataDir(t *testing.T) {
	t.Run("writes a header-only manifest", func(t *testing.T) {
		ws := newWorkspace(t)
		h, err := Build(ws, Options{DataDir: seedDataDir(t)})
		require.NoError(t, err)
		assert.Empty(t, h.Files)

		data, err := os.ReadFile(h.Manifest)
		require.NoError(t, err)
		assert.Equal(t, "file,chrlib,group\n", string(data))
	})

	t.Run("strict mode fails after writing the manifest", func(t *testing.T) {
		ws := newWorkspace(t)
		h, err := Build(ws, Options{DataDir: seedDataDir(t), Strict: true})
		require.ErrorIs(t, err, types.ErrNoInstrumentFiles)
		assert.FileExists(t, h.Manifest)
	})

	t.Run("missing data directory behaves like an empty one", func(t *testing.T) {
		ws := newWorkspace(t)
		h, err := Build(ws, Options{DataDir: filepath.Join(t.TempDir(), "absent")})
		require.NoError(t, err)
		assert.Empty(t, h.Files)
		assert.FileExists(t, h.Manifest)
	})
}
