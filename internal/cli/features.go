package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pvolkov/koiscope/internal/catalog"
	"github.com/pvolkov/koiscope/internal/features"
	"github.com/pvolkov/koiscope/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	featuresOut    string
	featuresFormat string
)

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features <catalog>",
	Short: "Export the detector feature dataset from a catalog",
	Long: `Features trims a raw catalog export down to the exact feature columns the
external detector model accepts, excluding every column that would leak
the target label. The output is a batch payload in the detector's
contract: CSV with raw cell text, or a JSON array of numeric feature
maps with explicit nulls for unparseable cells.

Example:
  koiscope features cumulative_koi.csv
  koiscope features cumulative_koi.csv --out classifier_features.csv
  koiscope features cumulative_koi.csv --format json --out features.json`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().StringVar(&featuresOut, "out", "classifier_features.csv", "output path")
	featuresCmd.Flags().StringVar(&featuresFormat, "format", "csv", "output format: csv or json")
	featuresCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall load timeout")
	featuresCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := scanConfig()
	fetcher := pipeline.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.InsecureTLS)

	fetched, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	sanitized, err := catalog.Sanitize(fetched.Text)
	if err != nil {
		return err
	}
	table, err := catalog.Parse(sanitized)
	if err != nil {
		return err
	}

	out, err := os.Create(featuresOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	var count int
	switch featuresFormat {
	case "csv":
		count, err = features.ExportCSV(table, out)
	case "json":
		count, err = features.ExportJSON(table, out)
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", featuresFormat)
	}
	if err != nil {
		return fmt.Errorf("export features: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %d feature rows to %s\n", count, featuresOut)
	return nil
}
