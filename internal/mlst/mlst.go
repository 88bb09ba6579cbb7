// Package mlst assigns multilocus sequence types to bacterial genome
// assemblies. An external aligner supplies scored hits of reference allele
// sequences against the assembly; this package reduces them to one best
// allele call per locus and resolves the calls against a database of
// registered ST profiles, reporting near misses as locus variants.
package mlst

import (
	"fmt"

	"github.com/emollier/kleborate/internal/blast"
)

// Aligner returns scored alignment hits for the reference allele
// sequences in seqs against an assembly. blast.Search satisfies this.
type Aligner func(seqs, assembly string, minCov, minIdent float64) ([]blast.Hit, error)

// Options are the per-run typing settings.
type Options struct {
	// MinCoverage and MinIdentity are the aligner's hit thresholds (percent)
	MinCoverage float64
	MinIdentity float64

	// MaxMissing is the most missing or inexact loci tolerated before the
	// ST is called 0 without any lookup
	MaxMissing int

	// CheckTruncation annotates allele calls with truncation tags
	CheckTruncation bool

	// Truncation produces the tag for a hit; required when CheckTruncation
	Truncation TruncationFunc

	// ReportIncomplete suffixes the info text with " (incomplete)" when
	// loci are missing
	ReportIncomplete bool

	// AllowMultiple keeps every hit per locus instead of only the best
	// one. This only affects reporting: the allele resolver still picks a
	// single best call per locus, so the assigned ST is unchanged
	AllowMultiple bool

	// Align runs the external aligner. Defaults to blast.Search
	Align Aligner
}

// Result is the ST assignment for one assembly.
type Result struct {
	// ST is the final label: a numeric ST id, "0" when unassignable, or
	// "<ST>-<n>LV" for a locus-variant call
	ST string

	// Alleles are the annotated per-locus calls in database header order,
	// "-" for loci without hits
	Alleles []string

	// Info is the matched ST's annotation text, eg its clonal complex
	Info string
}

// Typer assigns STs against one loaded scheme. The database is read-only
// after New, so a single Typer is safe to use from concurrent goroutines,
// one assembly each.
type Typer struct {
	db   *Database
	seqs string
	opts Options

	// requiredExactMatches is the acceptance floor: an ST call needs an
	// exact match at half (rounded down) of the scheme's loci
	requiredExactMatches int
}

// New loads the scheme's ST profiles from database and returns a Typer
// that aligns the allele sequences in seqs against each assembly.
func New(seqs, database string, hasInfo bool, opts Options) (*Typer, error) {
	db, err := LoadDatabase(database, hasInfo)
	if err != nil {
		return nil, err
	}

	if opts.CheckTruncation && opts.Truncation == nil {
		return nil, fmt.Errorf("truncation checking requested without a truncation checker")
	}

	if opts.Align == nil {
		opts.Align = blast.Search
	}

	return &Typer{
		db:                   db,
		seqs:                 seqs,
		opts:                 opts,
		requiredExactMatches: len(db.Loci) / 2,
	}, nil
}

// Loci returns the scheme's locus names in header order.
func (t *Typer) Loci() []string {
	return t.db.Loci
}

// HasInfo is whether the scheme carries per-ST annotation text.
func (t *Typer) HasInfo() bool {
	return t.db.HasInfo
}

// Type aligns the allele sequences against one assembly and assigns an
// ST. Aligner and database failures are fatal to the query; a poor match
// isn't an error, it's ST "0".
func (t *Typer) Type(assembly string) (Result, error) {
	hits, err := t.opts.Align(t.seqs, assembly, t.opts.MinCoverage, t.opts.MinIdentity)
	if err != nil {
		return Result{}, err
	}

	return t.TypeHits(hits)
}

// TypeHits assigns an ST from already-computed alignment hits.
func (t *Typer) TypeHits(hits []blast.Hit) (Result, error) {
	var err error
	if !t.opts.AllowMultiple {
		if hits, err = ReduceToBestHit(hits); err != nil {
			return Result{}, err
		}
	}

	var truncation TruncationFunc
	if t.opts.CheckTruncation {
		truncation = t.opts.Truncation
	}

	bestAllele, err := BestAlleles(hits, truncation)
	if err != nil {
		return Result{}, err
	}

	return t.db.assign(bestAllele, t.opts.MaxMissing, t.requiredExactMatches, t.opts.ReportIncomplete)
}
