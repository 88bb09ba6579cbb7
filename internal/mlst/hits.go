package mlst

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emollier/kleborate/internal/blast"
)

// alleleAndLocus parses the allele name and locus name from a hit's gene id.
// Ids are either srst2 formatted ("42__abcZ__abcZ_1__1", locus and allele in
// the 2nd and 3rd fields) or plain ("abcZ_1", locus up to the first underscore).
func alleleAndLocus(hit blast.Hit) (allele, locus string, err error) {
	if strings.Contains(hit.GeneID, "__") {
		components := strings.Split(hit.GeneID, "__")
		if len(components) < 3 {
			return "", "", fmt.Errorf("malformed srst2 gene id %q", hit.GeneID)
		}
		locus = components[1]
		allele = components[2]
	} else {
		allele = hit.GeneID
		locus = strings.Split(hit.GeneID, "_")[0]
	}

	return allele, locus, nil
}

// ReduceToBestHit keeps only the highest-scoring hit for each locus.
// Hits with equal scores keep their input order, so the first seen wins.
func ReduceToBestHit(hits []blast.Hit) ([]blast.Hit, error) {
	hitsPerLocus := make(map[string][]blast.Hit)
	var lociSeen []string

	for _, hit := range hits {
		_, locus, err := alleleAndLocus(hit)
		if err != nil {
			return nil, err
		}

		if _, seen := hitsPerLocus[locus]; !seen {
			lociSeen = append(lociSeen, locus)
		}
		hitsPerLocus[locus] = append(hitsPerLocus[locus], hit)
	}

	kept := []blast.Hit{}
	for _, locus := range lociSeen {
		locusHits := hitsPerLocus[locus]

		// sort best to worst
		sort.SliceStable(locusHits, func(i, j int) bool {
			return locusHits[i].Score > locusHits[j].Score
		})
		kept = append(kept, locusHits[0])
	}

	return kept, nil
}
