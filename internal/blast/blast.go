// Package blast wraps the blastn binary: it aligns a FASTA of reference
// allele sequences against an assembly and parses the tabular output into
// Hit records for the typing pipeline.
package blast

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// blastnDir is a temporary directory for all blastn output
var blastnDir = ""

// Hit is one blastn alignment between a reference allele sequence (the
// query) and a contig of the assembly (the subject).
type Hit struct {
	// GeneID is the query's FASTA id. It encodes the locus and allele
	// number, eg "abcZ_1" or "42__abcZ__abcZ_1__1" (srst2 format)
	GeneID string

	// Identity is the percent identity of the alignment
	Identity float64

	// Length is the alignment length in bases
	Length int

	// RefLength is the full length of the reference allele sequence
	RefLength int

	// RefStart is the 1-based start of the alignment on the reference
	RefStart int

	// RefEnd is the 1-based end of the alignment on the reference
	RefEnd int

	// Strand is "plus" or "minus": the subject strand the query matched
	Strand string

	// Score is the alignment's bitscore
	Score float64

	// Seq is the aligned contig sequence, gaps included
	Seq string
}

// blastExec is a small utility object for executing BLAST.
type blastExec struct {
	// the path to the FASTA file with the reference allele sequences
	query string

	// the path to the assembly being typed
	subject string

	// the output BLAST file
	out *os.File

	// the minimum coverage of the reference sequence (percent)
	minCov float64

	// the minimum percent identity
	minIdent float64
}

// Search aligns the allele reference sequences against an assembly and
// returns the hits that meet the coverage and identity thresholds.
func Search(seqs, assembly string, minCov, minIdent float64) ([]Hit, error) {
	if _, err := os.Stat(assembly); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to find an assembly at %s", assembly)
	}

	out, err := os.CreateTemp(blastnDir, "blastn.out-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(out.Name())

	b := &blastExec{
		query:    seqs,
		subject:  assembly,
		out:      out,
		minCov:   minCov,
		minIdent: minIdent,
	}

	// execute BLAST
	if err := b.run(); err != nil {
		return nil, fmt.Errorf("failed executing BLAST: %v", err)
	}

	// parse the output file into hits
	hits, err := b.parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse BLAST output: %v", err)
	}

	return hits, nil
}

// run calls the external blastn binary against the subject assembly.
func (b *blastExec) run() (err error) {
	// https://www.ncbi.nlm.nih.gov/books/NBK279682/
	blastCmd := exec.Command(
		"blastn",
		"-task", "blastn",
		"-query", b.query,
		"-subject", b.subject,
		"-out", b.out.Name(),
		"-outfmt", "6 qseqid pident length qlen qstart qend sstrand bitscore sseq",
		"-dust", "no",
		"-evalue", "1e-10",
		"-culling_limit", "1",
	)

	// execute BLAST and wait on it to finish
	if output, err := blastCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute blastn against %s: %v: %s", b.subject, err, string(output))
	}

	return
}

// parse reads the tabular output of blastn into hits, dropping those
// below the coverage or identity thresholds.
func (b *blastExec) parse() (hits []Hit, err error) {
	file, err := os.ReadFile(b.out.Name())
	if err != nil {
		return nil, err
	}

	return parseHits(string(file), b.minCov, b.minIdent)
}

// parseHits converts blastn tabular output (the outfmt above) to hits.
func parseHits(output string, minCov, minIdent float64) (hits []Hit, err error) {
	for _, line := range strings.Split(output, "\n") {
		// comment lines start with a #
		if strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
		if len(cols) < 9 {
			continue
		}

		identity, err := strconv.ParseFloat(cols[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad percent identity %q in blastn output: %v", cols[1], err)
		}
		length, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("bad alignment length %q in blastn output: %v", cols[2], err)
		}
		refLength, err := strconv.Atoi(cols[3])
		if err != nil {
			return nil, fmt.Errorf("bad query length %q in blastn output: %v", cols[3], err)
		}
		refStart, err := strconv.Atoi(cols[4])
		if err != nil {
			return nil, fmt.Errorf("bad query start %q in blastn output: %v", cols[4], err)
		}
		refEnd, err := strconv.Atoi(cols[5])
		if err != nil {
			return nil, fmt.Errorf("bad query end %q in blastn output: %v", cols[5], err)
		}
		score, err := strconv.ParseFloat(cols[7], 64)
		if err != nil {
			return nil, fmt.Errorf("bad bitscore %q in blastn output: %v", cols[7], err)
		}

		// check the thresholds before keeping the hit
		coverage := 100.0 * float64(length) / float64(refLength)
		if coverage < minCov || identity < minIdent {
			continue
		}

		hits = append(hits, Hit{
			GeneID:    cols[0],
			Identity:  identity,
			Length:    length,
			RefLength: refLength,
			RefStart:  refStart,
			RefEnd:    refEnd,
			Strand:    cols[6],
			Score:     score,
			Seq:       cols[8],
		})
	}

	return hits, nil
}

func init() {
	var err error

	blastnDir, err = os.MkdirTemp("", "blastn")
	if err != nil {
		stderr.Fatal(err)
	}
}
