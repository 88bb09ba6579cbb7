package mlst

import (
	"strings"
	"testing"

	"github.com/emollier/kleborate/internal/blast"
	"github.com/stretchr/testify/assert"
)

// fakeTranslate pretends every codon becomes one residue, no stops.
func fakeTranslate(dna string) string {
	return strings.Repeat("X", len(dna)/3)
}

func Test_TruncationCheck_fullLength(t *testing.T) {
	check := NewTruncationCheck(fakeTranslate, DefaultTruncationCoverage)

	// 33 bases of reference = 10 codons + stop; 30 aligned bases
	// translate to 10 residues, 100% coverage
	tag := check(blast.Hit{
		Seq:       strings.Repeat("ACT", 10),
		Strand:    "plus",
		RefStart:  1,
		RefEnd:    30,
		RefLength: 33,
	})

	assert.Equal(t, "", tag)
}

func Test_TruncationCheck_truncated(t *testing.T) {
	check := NewTruncationCheck(fakeTranslate, DefaultTruncationCoverage)

	tag := check(blast.Hit{
		Seq:       strings.Repeat("ACT", 5), // 5 of 10 expected residues
		Strand:    "plus",
		RefStart:  1,
		RefEnd:    15,
		RefLength: 33,
	})

	assert.Equal(t, "-50%", tag)
}

// a hit that doesn't start at the first base of the gene is 0%
func Test_TruncationCheck_lateStart(t *testing.T) {
	check := NewTruncationCheck(fakeTranslate, DefaultTruncationCoverage)

	tag := check(blast.Hit{
		Seq:       strings.Repeat("ACT", 10),
		Strand:    "plus",
		RefStart:  4,
		RefEnd:    33,
		RefLength: 33,
	})

	assert.Equal(t, "-0%", tag)
}

// minus-strand hits are flipped to the reference strand, coordinates included
func Test_TruncationCheck_minusStrand(t *testing.T) {
	var got string
	translate := func(dna string) string {
		got = dna
		return fakeTranslate(dna)
	}
	check := NewTruncationCheck(translate, DefaultTruncationCoverage)

	tag := check(blast.Hit{
		Seq:       "AAACCC",
		Strand:    "minus",
		RefStart:  2,
		RefEnd:    1, // reversed on the minus strand
		RefLength: 9,
	})

	assert.Equal(t, "GGGTTT", got)
	assert.Equal(t, "", tag)
}

// gaps are removed and anything from the first N on is dropped before
// translation
func Test_TruncationCheck_gapsAndNs(t *testing.T) {
	var got string
	translate := func(dna string) string {
		got = dna
		return fakeTranslate(dna)
	}
	check := NewTruncationCheck(translate, DefaultTruncationCoverage)

	check(blast.Hit{
		Seq:       "AAA-CCCNGGG",
		Strand:    "plus",
		RefStart:  1,
		RefEnd:    11,
		RefLength: 9,
	})

	assert.Equal(t, "AAACCC", got)
}
