// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct, a mix of settings available
// in .kleborate.yaml and those set from the command line.
type Config struct {
	// the minimum coverage of a reference allele for a hit to count (percent)
	MinCoverage float64 `mapstructure:"min-cov"`

	// the minimum percent identity for a hit to count
	MinIdentity float64 `mapstructure:"min-ident"`

	// the most missing or inexact loci tolerated before the ST is 0
	MaxMissing int `mapstructure:"max-missing"`

	// whether to annotate allele calls with truncation tags
	CheckTruncation bool `mapstructure:"truncation"`

	// the translated coverage below which an allele is truncated (percent)
	TruncationCoverage float64 `mapstructure:"truncation-cov"`

	// whether to mark the info column when loci are missing
	ReportIncomplete bool `mapstructure:"report-incomplete"`

	// whether to skip the per-locus best-hit prefilter
	AllowMultiple bool `mapstructure:"multi"`

	// whether the profiles file carries a trailing info column
	Info bool `mapstructure:"info"`
}

// New returns a new Config struct populated by Viper settings (either
// from the local .kleborate.yaml) and/or command line arguments.
func New() Config {
	var c Config

	err := viper.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}

	return c
}
