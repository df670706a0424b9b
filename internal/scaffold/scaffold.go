// Package scaffold builds a stub-run project: placeholder instrument files,
// a manifest describing them, a short non-contiguous manifest, placeholder
// FASTA and DLIB files, and the full pipeline invocation.
package scaffold

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/msfixture/internal/invocation"
	"github.com/mesh-intelligence/msfixture/internal/manifest"
	"github.com/mesh-intelligence/msfixture/internal/mzml"
	"github.com/mesh-intelligence/msfixture/internal/workspace"
	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// File and directory names under the workspace root.
const (
	RawDir            = "subdir"
	ManifestName      = "ms_files.csv"
	ShortManifestName = "ms_files_short.csv"
	FastaName         = "test.fasta"
	DlibName          = "test.dlib"
)

// Resource limits passed to stub runs.
const (
	DefaultMaxMemory = types.DefaultMaxMemory
	MaxCPUs          = 1
)

// Layout of the placeholder files. Stems a..m are raw files; n is the single
// compressed mzML file.
const (
	rawStems       = "abcdefghijklm"
	compressedStem = "n"
	chrLibRows     = 6
	groupCycle     = "xyz"
	fallbackGroup  = "z"
	fallbackRows   = 2
)

// ShortRows are the zero-based manifest rows kept in the short manifest:
// rows 1-3 and 7-9 of the full manifest. The gap is intentional.
var ShortRows = []int{0, 1, 2, 6, 7, 8}

// Options tune a scaffold build. The zero value is usable.
type Options struct {
	// MaxMemory overrides the --max_memory value.
	MaxMemory string
	Logger    *slog.Logger
}

// Build writes the scaffold into ws and returns the invocation and manifest
// paths.
func Build(ws *workspace.Workspace, opts Options) (types.Scaffold, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxMemory := opts.MaxMemory
	if maxMemory == "" {
		maxMemory = DefaultMaxMemory
	}

	files, err := writeRawFiles(ws)
	if err != nil {
		return types.Scaffold{}, err
	}

	rows := Rows(files)
	manifestPath := ws.Path(ManifestName)
	if err := manifest.Write(manifestPath, rows); err != nil {
		return types.Scaffold{}, err
	}

	short, err := manifest.Select(rows, ShortRows...)
	if err != nil {
		return types.Scaffold{}, fmt.Errorf("short manifest: %w", err)
	}
	shortPath := ws.Path(ShortManifestName)
	if err := manifest.Write(shortPath, short); err != nil {
		return types.Scaffold{}, err
	}

	fasta, err := ws.Touch(FastaName)
	if err != nil {
		return types.Scaffold{}, err
	}
	dlib, err := ws.Touch(DlibName)
	if err != nil {
		return types.Scaffold{}, err
	}

	config := invocation.New().
		Option(invocation.FlagProfile, invocation.ProfileStandard).
		Switch(invocation.FlagWithoutDocker).
		Switch(invocation.FlagStubRun).
		Option(invocation.FlagWorkDir, ws.Path(invocation.WorkDir)).
		OutputDirs(ws.Path).
		Option(invocation.FlagFasta, fasta).
		Option(invocation.FlagDlib, dlib).
		Option(invocation.FlagInput, manifestPath).
		Option(invocation.FlagMaxMemory, maxMemory).
		IntOption(invocation.FlagMaxCPUs, MaxCPUs).
		Build()

	logger.Debug("scaffold built",
		"root", ws.Root(),
		"files", len(files),
		"short_rows", len(short),
	)

	return types.Scaffold{
		Config:        config,
		Manifest:      manifestPath,
		ShortManifest: shortPath,
		RawFiles:      files,
	}, nil
}

// Rows assigns chrlib flags and groups to files in order: the first six
// rows are chrlib=true, groups cycle x,y,z, and the last two rows are
// forced into the fallback group.
func Rows(files []string) types.Manifest {
	rows := make(types.Manifest, len(files))
	for i, f := range files {
		group := string(groupCycle[i%len(groupCycle)])
		if i >= len(files)-fallbackRows {
			group = fallbackGroup
		}
		rows[i] = types.ManifestRow{
			File:   f,
			ChrLib: types.ChrLibToken(i < chrLibRows),
			Group:  group,
		}
	}
	return rows
}

func writeRawFiles(ws *workspace.Workspace) ([]string, error) {
	if _, err := ws.Mkdir(RawDir); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(rawStems)+1)
	for _, stem := range rawStems {
		p, err := ws.Touch(RawDir, string(stem)+mzml.RawExt)
		if err != nil {
			return nil, err
		}
		files = append(files, p)
	}

	compressed := ws.Path(RawDir, compressedStem+mzml.CompressedExt)
	if err := mzml.WritePlaceholder(compressed, compressedStem); err != nil {
		return nil, err
	}
	return append(files, compressed), nil
}
