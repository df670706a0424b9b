package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleNames(t *testing.T) {
	s := Sample("W")
	assert.Equal(t, "W.mzML", s.QuantColumn())
	assert.Equal(t, "s3://stuff/blah/W.raw", s.RemoteFile())

	got, ok := SampleFromColumn(s.QuantColumn())
	assert.True(t, ok)
	assert.Equal(t, s, got)

	got, ok = SampleFromRemote(s.RemoteFile())
	assert.True(t, ok)
	assert.Equal(t, s, got)
}

func TestSampleFromInvalid(t *testing.T) {
	_, ok := SampleFromColumn("Peptide")
	assert.False(t, ok)
	_, ok = SampleFromColumn(".mzML")
	assert.False(t, ok)
	_, ok = SampleFromRemote("/local/W.raw")
	assert.False(t, ok)
	_, ok = SampleFromRemote("s3://stuff/blah/W.mzML")
	assert.False(t, ok)
}
