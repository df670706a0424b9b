package quant

import (
	"strings"

	"github.com/mesh-intelligence/msfixture/internal/mzml"
)

// RemotePrefix is the storage prefix annotation tables put in front of
// every sample's raw file.
const RemotePrefix = "s3://stuff/blah/"

// Sample is a sample file stem. The peptide table and the annotation table
// name the same sample differently; both names come from here.
type Sample string

// QuantColumn is the sample's column name in the peptide table.
func (s Sample) QuantColumn() string {
	return string(s) + mzml.MzmlExt
}

// RemoteFile is the sample's file value in the annotation table.
func (s Sample) RemoteFile() string {
	return RemotePrefix + string(s) + mzml.RawExt
}

// SampleFromColumn inverts QuantColumn.
func SampleFromColumn(col string) (Sample, bool) {
	stem, ok := strings.CutSuffix(col, mzml.MzmlExt)
	if !ok || stem == "" {
		return "", false
	}
	return Sample(stem), true
}

// SampleFromRemote inverts RemoteFile.
func SampleFromRemote(file string) (Sample, bool) {
	rest, ok := strings.CutPrefix(file, RemotePrefix)
	if !ok {
		return "", false
	}
	stem, ok := strings.CutSuffix(rest, mzml.RawExt)
	if !ok || stem == "" {
		return "", false
	}
	return Sample(stem), true
}
