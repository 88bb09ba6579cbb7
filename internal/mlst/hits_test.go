package mlst

import (
	"testing"

	"github.com/emollier/kleborate/internal/blast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_alleleAndLocus(t *testing.T) {
	tests := []struct {
		name       string
		geneID     string
		wantAllele string
		wantLocus  string
	}{
		{"plain", "abcZ_1", "abcZ_1", "abcZ"},
		{"srst2", "42__abcZ__abcZ_1__1", "abcZ_1", "abcZ"},
		{"no underscore", "abcZ", "abcZ", "abcZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allele, locus, err := alleleAndLocus(blast.Hit{GeneID: tt.geneID})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllele, allele)
			assert.Equal(t, tt.wantLocus, locus)
		})
	}
}

func Test_alleleAndLocus_badSrst2(t *testing.T) {
	_, _, err := alleleAndLocus(blast.Hit{GeneID: "abcZ__1"})
	assert.Error(t, err)
}

func Test_ReduceToBestHit(t *testing.T) {
	hits := []blast.Hit{
		{GeneID: "abcZ_1", Score: 120},
		{GeneID: "abcZ_2", Score: 180},
		{GeneID: "adk_3", Score: 90},
		{GeneID: "abcZ_4", Score: 60},
	}

	kept, err := ReduceToBestHit(hits)
	require.NoError(t, err)

	require.Len(t, kept, 2)
	assert.Equal(t, "abcZ_2", kept[0].GeneID)
	assert.Equal(t, "adk_3", kept[1].GeneID)

	// at most one hit per locus, and its score at least every other
	// same-locus score
	for _, k := range kept {
		for _, h := range hits {
			_, keptLocus, _ := alleleAndLocus(k)
			_, hitLocus, _ := alleleAndLocus(h)
			if keptLocus == hitLocus {
				assert.GreaterOrEqual(t, k.Score, h.Score)
			}
		}
	}
}

// equal scores keep the hit seen first
func Test_ReduceToBestHit_tie(t *testing.T) {
	hits := []blast.Hit{
		{GeneID: "abcZ_1", Score: 100},
		{GeneID: "abcZ_2", Score: 100},
	}

	kept, err := ReduceToBestHit(hits)
	require.NoError(t, err)

	require.Len(t, kept, 1)
	assert.Equal(t, "abcZ_1", kept[0].GeneID)
}

func Test_ReduceToBestHit_empty(t *testing.T) {
	kept, err := ReduceToBestHit(nil)
	require.NoError(t, err)
	assert.Empty(t, kept)
}
