// Package invocation assembles the ordered command-line token list used to
// launch the pipeline under test.
package invocation

import (
	"strconv"

	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// Launcher switches and options, spelled exactly as the pipeline expects.
// Single-dash tokens belong to the workflow runner; double-dash tokens are
// pipeline parameters.
const (
	FlagProfile       = "-profile"
	FlagWithoutDocker = "-without-docker"
	FlagStubRun       = "-stub-run"
	FlagWorkDir       = "-w"
	FlagConfig        = "-c"

	FlagResultDir = "--result_dir"
	FlagMzmlDir   = "--mzml_dir"
	FlagReportDir = "--report_dir"
	FlagFasta     = "--fasta"
	FlagDlib      = "--dlib"
	FlagInput     = "--input"
	FlagMaxMemory = "--max_memory"
	FlagMaxCPUs   = "--max_cpus"

	FlagEncyclopediaLocalArgs = "--encyclopedia.local.args"
)

// ProfileStandard is the execution profile used by stub runs.
const ProfileStandard = "standard"

// Output directory names created under a fixture root by the pipeline.
const (
	WorkDir   = "work"
	ResultDir = "results"
	MzmlDir   = "mzml"
	ReportDir = "reports"
)

// Builder appends tokens in call order.
type Builder struct {
	tokens []string
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Switch appends a flag that takes no value.
func (b *Builder) Switch(flag string) *Builder {
	b.tokens = append(b.tokens, flag)
	return b
}

// Option appends a flag and its value.
func (b *Builder) Option(flag, value string) *Builder {
	b.tokens = append(b.tokens, flag, value)
	return b
}

// IntOption appends a flag and an integer value.
func (b *Builder) IntOption(flag string, value int) *Builder {
	return b.Option(flag, strconv.Itoa(value))
}

// OutputDirs appends the result, mzML, and report directory options, in
// that order, resolving each name with join. The directories are not
// created; the pipeline makes them.
func (b *Builder) OutputDirs(join func(elem ...string) string) *Builder {
	return b.
		Option(FlagResultDir, join(ResultDir)).
		Option(FlagMzmlDir, join(MzmlDir)).
		Option(FlagReportDir, join(ReportDir))
}

// Build returns a copy of the accumulated tokens.
func (b *Builder) Build() types.Invocation {
	out := make(types.Invocation, len(b.tokens))
	copy(out, b.tokens)
	return out
}
