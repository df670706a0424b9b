package types

import "strings"

// Manifest column names. The header is always exactly "file,chrlib,group".
const (
	ColumnFile   = "file"
	ColumnChrLib = "chrlib"
	ColumnGroup  = "group"
)

// ManifestHeader is the column order of every manifest CSV.
var ManifestHeader = []string{ColumnFile, ColumnChrLib, ColumnGroup}

// ManifestRow describes one input file handed to the pipeline.
//
// ChrLib holds the literal token written to disk ("true", "false", or the
// capitalized "False" used by annotation tables) so the rendering is exact.
type ManifestRow struct {
	File   string `json:"file" yaml:"file"`
	ChrLib string `json:"chrlib" yaml:"chrlib"`
	Group  string `json:"group" yaml:"group"`
}

// Record returns the row as CSV fields in header order.
func (r ManifestRow) Record() []string {
	return []string{r.File, r.ChrLib, r.Group}
}

// IsChrLib reports whether the row contributes to library building.
func (r ManifestRow) IsChrLib() bool {
	return strings.EqualFold(r.ChrLib, "true")
}

// ChrLibToken renders a chrlib flag the way pipeline manifests spell it.
func ChrLibToken(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Manifest is an ordered list of manifest rows.
type Manifest []ManifestRow

// Groups returns the number of rows per group label.
func (m Manifest) Groups() map[string]int {
	counts := make(map[string]int)
	for _, r := range m {
		counts[r.Group]++
	}
	return counts
}

// ChrLibCount returns the number of rows flagged for library building.
func (m Manifest) ChrLibCount() int {
	n := 0
	for _, r := range m {
		if r.IsChrLib() {
			n++
		}
	}
	return n
}

// Files returns the file column in row order.
func (m Manifest) Files() []string {
	out := make([]string, len(m))
	for i, r := range m {
		out[i] = r.File
	}
	return out
}
