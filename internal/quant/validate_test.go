package quant

import (
	"os"
	"testing"

	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDetectsBrokenBundles(t *testing.T) {
	tests := []struct {
		name    string
		file    func(types.QuantBundle) string
		content string
		wantErr error
	}{
		{
			name:    "contrast row does not sum to zero",
			file:    func(b types.QuantBundle) string { return b.Contrasts },
			content: ",C,D\ntest,-1,2\n",
			wantErr: types.ErrInvalidContrast,
		},
		{
			name:    "contrast columns differ from conditions",
			file:    func(b types.QuantBundle) string { return b.Contrasts },
			content: ",C,E\ntest,-1,1\n",
			wantErr: types.ErrInvalidContrast,
		},
		{
			name:    "protein table misses a protein",
			file:    func(b types.QuantBundle) string { return b.Proteins },
			content: "Protein\nA\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name:    "protein table has an extra protein",
			file:    func(b types.QuantBundle) string { return b.Proteins },
			content: "Protein\nA\nB\nC\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name: "annotation names an unknown sample",
			file: func(b types.QuantBundle) string { return b.Annotation },
			content: "file,chrlib,group,condition\n" +
				"s3://stuff/blah/W.raw,False,default,C\n" +
				"s3://stuff/blah/X.raw,False,default,C\n" +
				"s3://stuff/blah/Y.raw,False,default,D\n" +
				"s3://stuff/blah/Q.raw,False,default,D\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name: "annotation is missing a row",
			file: func(b types.QuantBundle) string { return b.Annotation },
			content: "file,chrlib,group,condition\n" +
				"s3://stuff/blah/W.raw,False,default,C\n" +
				"s3://stuff/blah/X.raw,False,default,C\n" +
				"s3://stuff/blah/Y.raw,False,default,D\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name:    "peptide table without metadata columns",
			file:    func(b types.QuantBundle) string { return b.Peptides },
			content: "W.mzML\tX.mzML\n1\t2\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name:    "negative intensity",
			file:    func(b types.QuantBundle) string { return b.Peptides },
			content: "W.mzML\tX.mzML\tY.mzML\tZ.mzML\tPeptide\tProtein\tnumFragments\n1\t2\t-3\t4\tA\tA\t1\n5\t6\t7\t8\tB\tB\t1\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name:    "infinite intensity",
			file:    func(b types.QuantBundle) string { return b.Peptides },
			content: "W.mzML\tX.mzML\tY.mzML\tZ.mzML\tPeptide\tProtein\tnumFragments\n1\t2\tInf\t4\tA\tA\t1\n5\t6\t7\t8\tB\tB\t1\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name:    "NaN intensity",
			file:    func(b types.QuantBundle) string { return b.Peptides },
			content: "W.mzML\tX.mzML\tY.mzML\tZ.mzML\tPeptide\tProtein\tnumFragments\n1\t2\tNaN\t4\tA\tA\t1\n5\t6\t7\t8\tB\tB\t1\n",
			wantErr: types.ErrSchemaMismatch,
		},
		{
			name:    "NaN contrast coefficient",
			file:    func(b types.QuantBundle) string { return b.Contrasts },
			content: ",C,D\ntest,NaN,1\n",
			wantErr: types.ErrInvalidContrast,
		},
		{
			name:    "opposite infinite contrast coefficients",
			file:    func(b types.QuantBundle) string { return b.Contrasts },
			content: ",C,D\ntest,+Inf,-Inf\n",
			wantErr: types.ErrInvalidContrast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := synthesize(t, DefaultSeed)
			require.NoError(t, os.WriteFile(tt.file(b), []byte(tt.content), 0o644))
			assert.ErrorIs(t, Validate(b), tt.wantErr)
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	b := synthesize(t, DefaultSeed)
	require.NoError(t, os.Remove(b.Contrasts))
	assert.Error(t, Validate(b))
}
