// Package codon translates nucleotide sequences with the bacterial
// genetic code. It exists as the default collaborator behind truncation
// checking; the typing core never imports it.
package codon

import "strings"

// table is translation table 11 (bacterial). Its codon assignments are
// identical to the standard code; only permitted start codons differ,
// which doesn't matter for coverage translation.
var table = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// Translate converts an in-frame DNA sequence to amino acids, stopping at
// the first stop codon. Trailing bases short of a codon are ignored and
// unrecognized codons become X.
func Translate(dna string) string {
	dna = strings.ToUpper(dna)

	var aa strings.Builder
	for i := 0; i+3 <= len(dna); i += 3 {
		residue, ok := table[dna[i:i+3]]
		if !ok {
			residue = 'X'
		}
		if residue == '*' {
			break
		}
		aa.WriteByte(residue)
	}

	return aa.String()
}
