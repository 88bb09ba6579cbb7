package mlst

import (
	"fmt"
	"strings"

	"github.com/emollier/kleborate/internal/blast"
)

// DefaultTruncationCoverage is the translated-coverage percentage below
// which an allele call is tagged as truncated.
const DefaultTruncationCoverage = 90.0

// TranslateFunc converts an in-frame nucleotide sequence to amino acids,
// stopping at the first stop codon.
type TranslateFunc func(dna string) string

// TruncationFunc produces a hit's truncation tag: "" when the translated
// product covers enough of the reference, otherwise "-N%" with the integer
// coverage percentage ("-0%" when the hit doesn't start the gene).
type TruncationFunc func(hit blast.Hit) string

// NewTruncationCheck builds a truncation checker around an external
// translation routine. A hit is truncated when translating its sequence
// yields less than covThreshold percent of the reference's expected
// protein length.
func NewTruncationCheck(translate TranslateFunc, covThreshold float64) TruncationFunc {
	return func(hit blast.Hit) string {
		// the aligner reports the aligned sequence, so remove dashes if
		// there are deletions relative to the reference
		nuclSeq := strings.ReplaceAll(hit.Seq, "-", "")

		// the contig's sequence comes back as aligned, so flip to the
		// reference strand if needed
		refStart := hit.RefStart
		if hit.Strand == "minus" {
			nuclSeq = blast.ReverseComplement(nuclSeq)
			refStart = hit.RefEnd
		}

		// the hit must start at the first base of the gene
		if refStart != 1 {
			return "-0%"
		}

		// any Ns would break translation
		nuclSeq, _, _ = strings.Cut(nuclSeq, "N")

		// trim to a whole number of codons
		nuclSeq = nuclSeq[:len(nuclSeq)/3*3]

		// the reference allele is assumed to be a full CDS with a stop
		// codon at the end, which serves as the coverage denominator
		refAALength := (hit.RefLength - 3) / 3
		if refAALength <= 0 {
			return "-0%"
		}

		translation := translate(nuclSeq)

		coverage := 100.0 * float64(len(translation)) / float64(refAALength)
		if coverage >= covThreshold {
			return ""
		}
		return fmt.Sprintf("-%.0f%%", coverage)
	}
}
