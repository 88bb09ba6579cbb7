package blast

import (
	"bytes"
	"log"
	"os"
	"strings"
)

var stderr = log.New(os.Stderr, "", 0)

var revCompMap = map[rune]byte{
	'A': 'T',
	'T': 'A',
	'G': 'C',
	'C': 'G',
	'N': 'N',
	'-': '-',
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence. Bases without a complement (ambiguity codes) become N.
func ReverseComplement(seq string) string {
	seq = strings.ToUpper(seq)

	var revCompBuffer bytes.Buffer
	for _, c := range seq {
		comp, ok := revCompMap[c]
		if !ok {
			comp = 'N'
		}
		revCompBuffer.WriteByte(comp)
	}

	revCompBytes := revCompBuffer.Bytes()
	for i := 0; i < len(revCompBytes)/2; i++ {
		j := len(revCompBytes) - i - 1
		revCompBytes[i], revCompBytes[j] = revCompBytes[j], revCompBytes[i]
	}

	return string(revCompBytes)
}
