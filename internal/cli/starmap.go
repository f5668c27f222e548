package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pvolkov/koiscope/internal/pipeline"
	"github.com/spf13/cobra"
)

var starmapOut string

// starmapCmd represents the starmap command
var starmapCmd = &cobra.Command{
	Use:   "starmap <catalog>",
	Short: "Emit the deduplicated star map for spatial plotting",
	Long: `Starmap groups every catalog row by host star identifier into one star
entity each, carrying its flagged Kepler objects and plottable physical
fields, plus the bounding box plotters use to normalize coordinates.

Stars keep their first-appearance order; rows without a star identifier
or without parseable coordinates are dropped and counted.

Example:
  koiscope starmap cumulative_koi.csv
  koiscope starmap cumulative_koi.csv --json starmap.json`,
	Args: cobra.ExactArgs(1),
	RunE: runStarmap,
}

func init() {
	rootCmd.AddCommand(starmapCmd)

	starmapCmd.Flags().StringVar(&starmapOut, "json", "starmap.json", "output JSON path")
	starmapCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall load timeout")
	starmapCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runStarmap(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p := pipeline.NewPipeline(scanConfig())

	outcome, err := p.LoadCatalog(ctx, source)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	starMap := outcome.Snapshot.StarMap()
	if err := p.Renderer().WriteJSON(starMap, starmapOut); err != nil {
		return fmt.Errorf("write star map: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %d stars to %s\n", len(starMap.Stars), starmapOut)
	if bounds := starMap.Bounds; bounds != nil {
		fmt.Fprintf(os.Stderr, "  RA  [%.4f, %.4f]\n", bounds.MinRA, bounds.MaxRA)
		fmt.Fprintf(os.Stderr, "  Dec [%.4f, %.4f]\n", bounds.MinDec, bounds.MaxDec)
	}
	if dropped := outcome.Report.Drops; dropped.MissingStarID+dropped.MissingCoordinates > 0 {
		fmt.Fprintf(os.Stderr, "  Dropped %d rows without star id, %d without coordinates\n",
			dropped.MissingStarID, dropped.MissingCoordinates)
	}

	return nil
}
