package mlst

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// truncationTag matches a truncation percentage suffix, eg "-70%".
var truncationTag = regexp.MustCompile(`-\d+%`)

// assign turns per-locus best allele calls into a final ST label.
//
// The profile is first checked against the exact lookup. Failing that, the
// nearest registered ST is found by counting differing allele numbers per
// locus, and the call is reported as a locus variant ("<ST>-<n>LV"). Two
// gates force the ST to "0": more missing/inexact loci than maxMissing, or
// fewer exact matches than requiredExactMatches.
func (db *Database) assign(bestAllele map[string]string, maxMissing, requiredExactMatches int, reportIncomplete bool) (Result, error) {
	bestST := make([]string, 0, len(db.Loci))
	bestSTAnnotated := make([]string, 0, len(db.Loci))

	mismatchLociIncludingSNPs, missingLoci := 0, 0

	for _, locus := range db.Loci {
		allele, ok := bestAllele[locus]
		if !ok {
			bestST = append(bestST, "-")
			bestSTAnnotated = append(bestSTAnnotated, "-")
			mismatchLociIncludingSNPs++
			missingLoci++
			continue
		}

		// remove * (inexact match) and truncation percentages
		alleleNumber := strings.ReplaceAll(allele, "*", "")
		alleleNumber = truncationTag.ReplaceAllString(alleleNumber, "")

		if strings.Contains(allele, "*") {
			mismatchLociIncludingSNPs++
		}
		bestST = append(bestST, alleleNumber)
		bestSTAnnotated = append(bestSTAnnotated, allele) // markers intact
	}

	bst := strings.Join(bestST, ",")

	if mismatchLociIncludingSNPs <= maxMissing {
		if st, ok := db.ProfileToST[bst]; ok {
			// may still have mismatching alleles due to SNPs, recorded
			// in mismatchLociIncludingSNPs
			bst = st
		} else {
			// determine the closest ST
			closest, _, distIncludingSNPs, err := db.closestLocusVariant(bestST, bestSTAnnotated)
			if err != nil {
				return Result{}, err
			}
			bst = closest
			mismatchLociIncludingSNPs = distIncludingSNPs
		}
	} else {
		bst = "0"
	}

	// only report an ST if enough loci are exact matches
	exactMatches := len(bestST) - mismatchLociIncludingSNPs
	if exactMatches < requiredExactMatches {
		bst = "0"
	}

	info := ""
	if db.HasInfo && bst != "0" {
		info = db.STToInfo[bst]
		if reportIncomplete && missingLoci > 0 {
			info += " (incomplete)"
		}
	}

	if mismatchLociIncludingSNPs > 0 && bst != "0" {
		bst += "-" + strconv.Itoa(mismatchLociIncludingSNPs) + "LV"
	}

	return Result{ST: bst, Alleles: bestSTAnnotated, Info: info}, nil
}

// closestLocusVariant finds the registered ST whose profile differs from
// the query at the fewest loci. Missing loci count as allele 0. Ties go to
// the numerically smallest ST id. Two distances come back: minDist ignores
// SNP markers, minDistIncludingSNPs also counts *-marked loci as
// mismatches against the winning ST's profile.
func (db *Database) closestLocusVariant(query, annotatedQuery []string) (closestST string, minDist, minDistIncludingSNPs int, err error) {
	query = append([]string(nil), query...)
	for i, allele := range query {
		if allele == "-" {
			query[i] = "0"
		}
	}

	minDist = len(query)
	var closest []int
	closestAlleles := make(map[string]string) // ST id -> its profile

	for profile, st := range db.ProfileToST {
		d, err := profileDistance(strings.Split(profile, ","), query)
		if err != nil {
			return "", 0, 0, err
		}

		id, err := strconv.Atoi(st)
		if err != nil {
			return "", 0, 0, fmt.Errorf("non-numeric ST id %q in profiles", st)
		}

		if d == minDist {
			closest = append(closest, id)
			closestAlleles[st] = profile
		} else if d < minDist {
			// reset
			closest = []int{id}
			closestAlleles[st] = profile
			minDist = d
		}
	}

	if len(closest) == 0 {
		return "", 0, 0, fmt.Errorf("no ST profiles to search")
	}

	smallest := closest[0]
	for _, id := range closest[1:] {
		if id < smallest {
			smallest = id
		}
	}
	closestST = strconv.Itoa(smallest)

	// rebuild the query counting inexact matches as mismatches too
	annotated := make([]string, len(annotatedQuery))
	for i, allele := range annotatedQuery {
		annotated[i] = truncationTag.ReplaceAllString(allele, "")
		if allele == "-" || strings.Contains(allele, "*") {
			annotated[i] = "0"
		}
	}

	minDistIncludingSNPs, err = profileDistance(strings.Split(closestAlleles[closestST], ","), annotated)
	if err != nil {
		return "", 0, 0, err
	}

	return closestST, minDist, minDistIncludingSNPs, nil
}

// profileDistance counts the loci whose allele numbers differ between two
// equal-length profiles. Allele numbers that don't parse as integers are a
// data-format error, not a silent mismatch.
func profileDistance(a, b []string) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("profile length mismatch: %d vs %d loci", len(a), len(b))
	}

	d := 0
	for i := range a {
		x, err := strconv.Atoi(a[i])
		if err != nil {
			return 0, fmt.Errorf("non-integer allele number %q in ST profile", a[i])
		}
		y, err := strconv.Atoi(b[i])
		if err != nil {
			return 0, fmt.Errorf("non-integer allele number %q in query profile", b[i])
		}
		if x != y {
			d++
		}
	}

	return d, nil
}
