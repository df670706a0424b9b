// Package realdata builds a harness around small real instrument files
// that already exist on disk: it discovers the compressed mzML files in a
// data directory, writes a manifest for them, and assembles an invocation
// that runs the pipeline with a named test profile.
package realdata

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/msfixture/internal/invocation"
	"github.com/mesh-intelligence/msfixture/internal/manifest"
	"github.com/mesh-intelligence/msfixture/internal/mzml"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// Names inside the data directory and the workspace.
const (
	FastaName    = "small-yeast.fasta"
	DlibName     = "small-yeast.dlib"
	Pattern      = "*" + mzml.CompressedExt
	ManifestName = "ms_files.csv"
)

// Row values given to every discovered file.
const (
	ChrLib = "false"
	Group  = "test"
)

// DefaultFragmentationArgs overrides the library search fragmentation
// method.
const DefaultFragmentationArgs = "-frag HCD"

// Options configure a harness build. Zero fields take the defaults.
type Options struct {
	// DataDir holds the FASTA, DLIB, and *.mzML.gz files.
	DataDir string
	// ProfileConfig is the pipeline config file passed with -c.
	ProfileConfig string
	// CPUs is the --max_cpus value; defaults to runtime.NumCPU().
	CPUs int
	// FragmentationArgs is passed through to the library search step.
	FragmentationArgs string
	// Strict makes an empty discovery an error. The manifest is still
	// written.
	Strict bool
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.DataDir == "" {
		o.DataDir = types.DefaultDataDir
	}
	if o.ProfileConfig == "" {
		o.ProfileConfig = types.DefaultProfileConfig
	}
	if o.CPUs <= 0 {
		o.CPUs = runtime.NumCPU()
	}
	if o.FragmentationArgs == "" {
		o.FragmentationArgs = DefaultFragmentationArgs
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Discover returns the compressed mzML files in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	return files, nil
}

// Build writes the harness manifest into ws and returns the invocation.
//
// When no files are discovered the manifest holds only its header and,
// unless opts.Strict is set, Build succeeds. Callers must test that case
// explicitly.
func Build(ws *workspace.Workspace, opts Options) (types.Harness, error) {
	opts = opts.withDefaults()

	files, err := Discover(opts.DataDir)
	if err != nil {
		return types.Harness{}, err
	}

	rows := make(types.Manifest, len(files))
	for i, f := range files {
		rows[i] = types.ManifestRow{File: f, ChrLib: ChrLib, Group: Group}
	}

	manifestPath := ws.Path(ManifestName)
	if err := manifest.Write(manifestPath, rows); err != nil {
		return types.Harness{}, err
	}

	config := invocation.New().
		Option(invocation.FlagWorkDir, ws.Path(invocation.WorkDir)).
		Option(invocation.FlagConfig, opts.ProfileConfig).
		OutputDirs(ws.Path).
		Option(invocation.FlagFasta, filepath.Join(opts.DataDir, FastaName)).
		Option(invocation.FlagDlib, filepath.Join(opts.DataDir, DlibName)).
		Option(invocation.FlagInput, manifestPath).
		IntOption(invocation.FlagMaxCPUs, opts.CPUs).
		Option(invocation.FlagEncyclopediaLocalArgs, opts.FragmentationArgs).
		Build()

	harness := types.Harness{
		Config:   config,
		Manifest: manifestPath,
		Files:    files,
	}

	if len(files) == 0 {
		opts.Logger.Warn("no instrument files discovered; manifest is header-only",
			"data_dir", opts.DataDir,
			"pattern", Pattern,
		)
		if opts.Strict {
			return harness, fmt.Errorf("%s/%s: %w", opts.DataDir, Pattern, types.ErrNoInstrumentFiles)
		}
		return harness, nil
	}

	opts.Logger.Debug("real-data harness built", "root", ws.Root(), "files", len(files))
	return harness, nil
}
