package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pvolkov/koiscope/internal/model"
	"github.com/pvolkov/koiscope/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	featuredN   int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <catalog>",
	Short: "Load one KOI catalog and generate a summary report",
	Long: `Scan loads a single catalog export (local file or HTTP URL) to:
- Parse every KOI row into typed records with strict null handling
- Tally dispositions and compute the aggregate statistics
- Rank the featured planets by confidence score
- Deduplicate host stars for the spatial view
- Surface dropped-row counts for data-quality diagnostics

Example:
  koiscope scan cumulative_koi.csv
  koiscope scan https://archive.example.org/koi/cumulative.csv --json report.json --md report.md
  koiscope scan cumulative_koi.csv --featured 10`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().IntVar(&featuredN, "featured", 6, "how many top-scored planets to feature")

	// HTTP flags
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall load timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "koiscope/0.2 (+https://github.com/pvolkov/koiscope)", "HTTP User-Agent")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 50_000_000, "max response bytes to read")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	scanCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
}

// scanConfig builds the effective configuration from the scan flag set
func scanConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Catalog.FeaturedCount = featuredN
	return cfg
}

func runScan(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading: %s\n", source)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(scanConfig())

	outcome, err := p.LoadCatalog(ctx, source)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Parsed %d records\n", outcome.Report.Summary.TotalRecords)
		fmt.Fprintf(os.Stderr, "✓ Aggregated %d stars\n", outcome.Report.StarCount)
		drops := outcome.Report.Drops
		fmt.Fprintf(os.Stderr, "✓ Dropped rows: %d missing designation, %d missing star id, %d missing coordinates\n",
			drops.MissingIdentifier, drops.MissingStarID, drops.MissingCoordinates)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(outcome.Report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
