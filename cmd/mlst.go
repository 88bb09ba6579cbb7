package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/emollier/kleborate/config"
	"github.com/emollier/kleborate/internal/codon"
	"github.com/emollier/kleborate/internal/mlst"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mlstCmd assigns sequence types to genome assemblies.
var mlstCmd = &cobra.Command{
	Use:                        "mlst [assembly] ...",
	Short:                      "Assign multilocus sequence types to genome assemblies",
	Run:                        runMLST,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  kleborate mlst -s alleles.fasta -p profiles.tsv assembly.fasta",
	Long: `Assign a multilocus sequence type to each assembly.

The scheme's allele sequences are aligned against the assembly with blastn
and the best allele call per locus is resolved against the registered ST
profiles. A profile that matches no registered ST exactly is reported
against its closest ST as a locus variant, eg 258-1LV. Imprecise allele
matches carry a trailing *; assemblies matching too few loci get ST 0.`,
}

// set flags
func init() {
	mlstCmd.Flags().StringP("seqs", "s", "", "path to a FASTA file with the scheme's allele sequences")
	mlstCmd.Flags().StringP("profiles", "p", "", "path to the scheme's tab-separated ST profiles")
	mlstCmd.Flags().Float64P("min-cov", "c", 80.0, "minimum allele coverage (percent)")
	mlstCmd.Flags().Float64P("min-ident", "i", 90.0, "minimum allele identity (percent)")
	mlstCmd.Flags().IntP("max-missing", "m", 3, "most missing or inexact loci tolerated before the ST is 0")
	mlstCmd.Flags().Bool("truncation", false, "tag allele calls whose translation is truncated")
	mlstCmd.Flags().Float64("truncation-cov", mlst.DefaultTruncationCoverage, "translated coverage below which an allele is truncated (percent)")
	mlstCmd.Flags().Bool("report-incomplete", false, "suffix the info column with (incomplete) when loci are missing")
	mlstCmd.Flags().Bool("multi", false, "skip the per-locus best-hit prefilter; one call per locus is still reported")
	mlstCmd.Flags().Bool("info", false, "the profiles file carries a trailing info column, eg clonal complex")

	mlstCmd.MarkFlagRequired("seqs")
	mlstCmd.MarkFlagRequired("profiles")

	// bind the parameters to viper
	viper.BindPFlag("min-cov", mlstCmd.Flags().Lookup("min-cov"))
	viper.BindPFlag("min-ident", mlstCmd.Flags().Lookup("min-ident"))
	viper.BindPFlag("max-missing", mlstCmd.Flags().Lookup("max-missing"))
	viper.BindPFlag("truncation", mlstCmd.Flags().Lookup("truncation"))
	viper.BindPFlag("truncation-cov", mlstCmd.Flags().Lookup("truncation-cov"))
	viper.BindPFlag("report-incomplete", mlstCmd.Flags().Lookup("report-incomplete"))
	viper.BindPFlag("multi", mlstCmd.Flags().Lookup("multi"))
	viper.BindPFlag("info", mlstCmd.Flags().Lookup("info"))

	RootCmd.AddCommand(mlstCmd)
}

// runMLST types every assembly argument against the scheme.
func runMLST(cmd *cobra.Command, args []string) {
	c := config.New()

	seqs, _ := cmd.Flags().GetString("seqs")
	profiles, _ := cmd.Flags().GetString("profiles")

	opts := mlst.Options{
		MinCoverage:      c.MinCoverage,
		MinIdentity:      c.MinIdentity,
		MaxMissing:       c.MaxMissing,
		CheckTruncation:  c.CheckTruncation,
		ReportIncomplete: c.ReportIncomplete,
		AllowMultiple:    c.AllowMultiple,
	}
	if c.CheckTruncation {
		opts.Truncation = mlst.NewTruncationCheck(codon.Translate, c.TruncationCoverage)
	}

	typer, err := mlst.New(seqs, profiles, c.Info, opts)
	if err != nil {
		stderr.Fatalf("failed to load ST profiles: %v", err)
	}

	// assemblies are independent and the database is read-only after
	// loading, so type each one in its own goroutine
	results := make([]mlst.Result, len(args))
	errs := make([]error, len(args))

	var wg sync.WaitGroup
	for i, assembly := range args {
		wg.Add(1)
		go func(i int, assembly string) {
			defer wg.Done()
			results[i], errs[i] = typer.Type(assembly)
		}(i, assembly)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			stderr.Fatalf("failed to type %s: %v", args[i], err)
		}
	}

	writeResults(os.Stdout, typer, args, results)
}

// writeResults logs one row per assembly: the strain name, the optional
// info column, the ST and the annotated allele call per locus.
func writeResults(w io.Writer, typer *mlst.Typer, assemblies []string, results []mlst.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)

	cols := []string{"strain"}
	if typer.HasInfo() {
		cols = append(cols, "info")
	}
	cols = append(cols, "ST")
	cols = append(cols, typer.Loci()...)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	for i, result := range results {
		row := []string{strainName(assemblies[i])}
		if typer.HasInfo() {
			row = append(row, result.Info)
		}
		row = append(row, result.ST)
		row = append(row, result.Alleles...)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
}

// strainName is the assembly's file name, directory and extension removed.
func strainName(assembly string) string {
	base := filepath.Base(assembly)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
