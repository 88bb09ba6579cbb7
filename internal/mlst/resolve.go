package mlst

import (
	"fmt"
	"strings"

	"github.com/emollier/kleborate/internal/blast"
)

// BestAlleles picks the best-scoring allele call for each locus with at
// least one hit. Calls are annotated: a trailing * when the hit wasn't a
// perfect full-length match, and a truncation tag (eg "-70%") when a
// truncation checker is supplied. Loci without hits are absent from the
// returned map.
func BestAlleles(hits []blast.Hit, truncation TruncationFunc) (map[string]string, error) {
	// keyed by locus: the best score seen so far and its allele call
	bestScore := make(map[string]float64)
	bestAllele := make(map[string]string)

	for _, hit := range hits {
		allele, locus, err := alleleAndLocus(hit)
		if err != nil {
			return nil, err
		}

		if hit.Identity < 100.0 || hit.Length < hit.RefLength {
			allele += "*" // inexact match
		}
		if truncation != nil {
			allele += truncation(hit)
		}

		// keep the number only, markers included
		parts := strings.Split(allele, "_")
		if len(parts) < 2 {
			return nil, fmt.Errorf("gene id %q has no allele number", hit.GeneID)
		}
		number := parts[1]

		// strict >, so the first of equal scores wins
		if score, seen := bestScore[locus]; !seen || hit.Score > score {
			bestScore[locus] = hit.Score
			bestAllele[locus] = number
		}
	}

	return bestAllele, nil
}
