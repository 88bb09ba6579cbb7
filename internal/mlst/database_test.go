package mlst

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadDatabase(t *testing.T) {
	db, err := LoadDatabase(filepath.Join("testdata", "profiles.tsv"), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"abcZ", "adk", "aroE", "fumC", "gdh", "pdhC", "pgm"}, db.Loci)
	assert.Equal(t, []string{"10", "22", "34", "101"}, db.STs)
	assert.Equal(t, "10", db.ProfileToST["1,2,3,4,5,6,7"])
	assert.Equal(t, "22", db.ProfileToST["1,2,3,4,5,6,8"])
	assert.Equal(t, "ST-10 complex", db.STToInfo["10"])
	assert.Equal(t, "unassigned", db.STToInfo["101"])
	assert.True(t, db.HasInfo)
}

func Test_LoadDatabase_noInfo(t *testing.T) {
	db, err := LoadDatabase(filepath.Join("testdata", "profiles_noinfo.tsv"), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"abcZ", "adk", "aroE", "fumC", "gdh", "pdhC", "pgm"}, db.Loci)
	assert.Equal(t, "10", db.ProfileToST["1,2,3,4,5,6,7"])
	assert.False(t, db.HasInfo)
	assert.Empty(t, db.STToInfo)
}

func Test_LoadDatabase_badRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.tsv")
	content := "ST\tabcZ\tadk\n10\t1\t2\n22\t1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadDatabase(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "fields")
}

// a header without any locus columns is a data-format error, whether the
// info column would leave it empty or the ST label is all there is
func Test_LoadDatabase_headerNoLoci(t *testing.T) {
	tests := []struct {
		name    string
		content string
		hasInfo bool
	}{
		{"st label only, with info", "ST\n10\t1\n", true},
		{"st label only", "ST\n10\t1\n", false},
		{"st and info labels only", "ST\tclonal_complex\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profiles.tsv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadDatabase(path, tt.hasInfo)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no locus columns")
		})
	}
}

func Test_LoadDatabase_empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.tsv")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := LoadDatabase(path, false)
	assert.Error(t, err)
}

// every registered ST's own profile must resolve back to that same ST with
// zero mismatches
func Test_LoadDatabase_roundTrip(t *testing.T) {
	db, err := LoadDatabase(filepath.Join("testdata", "profiles.tsv"), true)
	require.NoError(t, err)

	for profile, st := range db.ProfileToST {
		alleles := strings.Split(profile, ",")
		bestAllele := make(map[string]string)
		for i, locus := range db.Loci {
			bestAllele[locus] = alleles[i]
		}

		result, err := db.assign(bestAllele, 3, len(db.Loci)/2, false)
		require.NoError(t, err)
		assert.Equal(t, st, result.ST, "profile %s", profile)
		assert.Equal(t, alleles, result.Alleles)
	}
}
